package mcontact

import (
	"strings"
	"time"

	"github.com/the-dev-tools/folio/pkg/model/mfield"
)

type Status string

const (
	StatusNew     Status = "new"
	StatusRead    Status = "read"
	StatusReplied Status = "replied"
	StatusClosed  Status = "closed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var (
	statuses   = []string{string(StatusNew), string(StatusRead), string(StatusReplied), string(StatusClosed)}
	priorities = []string{string(PriorityLow), string(PriorityNormal), string(PriorityHigh), string(PriorityUrgent)}
)

// Contact is a message left through the public contact form. Contacts are not ordered.
type Contact struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Phone       string    `json:"phone"`
	Company     string    `json:"company"`
	ProjectType string    `json:"projectType"`
	BudgetRange string    `json:"budgetRange"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	IPAddress   string    `json:"ipAddress"`
	UserAgent   string    `json:"userAgent"`
	Referrer    string    `json:"referrer"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Submission is what a visitor may set. Status, priority and client
// metadata are assigned by the server.
type Submission struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	ProjectType string `json:"projectType"`
	BudgetRange string `json:"budgetRange"`
}

func (s *Submission) Trim() {
	for _, f := range []*string{&s.Name, &s.Email, &s.Subject, &s.Message, &s.Phone, &s.Company, &s.ProjectType, &s.BudgetRange} {
		*f = strings.TrimSpace(*f)
	}
}

func (s Submission) Validate() error {
	var c mfield.Checker
	c.Required("name", s.Name)
	c.MaxLen("name", s.Name, 120)
	c.Required("email", s.Email)
	c.Email("email", s.Email)
	c.Required("message", s.Message)
	c.MaxLen("message", s.Message, 5000)
	c.MaxLen("subject", s.Subject, 200)
	return c.Err()
}

func ValidateStatus(status Status, priority Priority) error {
	var c mfield.Checker
	c.OneOf("status", string(status), statuses...)
	c.OneOf("priority", string(priority), priorities...)
	return c.Err()
}
