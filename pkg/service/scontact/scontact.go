package scontact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/the-dev-tools/folio/db/pkg/sqlc/gen"
	"github.com/the-dev-tools/folio/pkg/dbtime"
	"github.com/the-dev-tools/folio/pkg/model/mcontact"
	"github.com/the-dev-tools/folio/pkg/movable"
)

var ErrNoContactFound = fmt.Errorf("contact %w", movable.ErrItemNotFound)

// ClientInfo is request metadata stored alongside a submission.
type ClientInfo struct {
	IPAddress string
	UserAgent string
	Referrer  string
}

type ContactService struct {
	queries *gen.Queries
	logger  *slog.Logger
}

func New(db gen.DBTX, logger *slog.Logger) ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return ContactService{queries: gen.New(db), logger: logger}
}

func ConvertToModelContact(c gen.Contact) mcontact.Contact {
	return mcontact.Contact{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Subject:     c.Subject,
		Message:     c.Message,
		Phone:       c.Phone,
		Company:     c.Company,
		ProjectType: c.ProjectType,
		BudgetRange: c.BudgetRange,
		Status:      mcontact.Status(c.Status),
		Priority:    mcontact.Priority(c.Priority),
		IPAddress:   c.IpAddress,
		UserAgent:   c.UserAgent,
		Referrer:    c.Referrer,
		Notes:       c.Notes,
		CreatedAt:   dbtime.FromUnix(c.CreatedAt),
		UpdatedAt:   dbtime.FromUnix(c.UpdatedAt),
	}
}

// Submit stores a visitor message as new with normal priority.
func (s ContactService) Submit(ctx context.Context, sub mcontact.Submission, client ClientInfo) (mcontact.Contact, error) {
	sub.Trim()
	if err := sub.Validate(); err != nil {
		return mcontact.Contact{}, err
	}
	now := dbtime.Unix()
	row, err := s.queries.CreateContact(ctx, gen.CreateContactParams{
		Name:        sub.Name,
		Email:       sub.Email,
		Subject:     sub.Subject,
		Message:     sub.Message,
		Phone:       sub.Phone,
		Company:     sub.Company,
		ProjectType: sub.ProjectType,
		BudgetRange: sub.BudgetRange,
		Status:      string(mcontact.StatusNew),
		Priority:    string(mcontact.PriorityNormal),
		IpAddress:   client.IPAddress,
		UserAgent:   client.UserAgent,
		Referrer:    client.Referrer,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return mcontact.Contact{}, err
	}
	s.logger.InfoContext(ctx, "contact submitted", "contact_id", row.ID)
	return ConvertToModelContact(row), nil
}

func (s ContactService) Get(ctx context.Context, id int64) (mcontact.Contact, error) {
	row, err := s.queries.GetContact(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mcontact.Contact{}, ErrNoContactFound
		}
		return mcontact.Contact{}, err
	}
	return ConvertToModelContact(row), nil
}

// List returns contacts newest first. An empty status lists all of them.
func (s ContactService) List(ctx context.Context, status mcontact.Status) ([]mcontact.Contact, error) {
	var (
		rows []gen.Contact
		err  error
	)
	if status == "" {
		rows, err = s.queries.ListContacts(ctx)
	} else {
		if verr := mcontact.ValidateStatus(status, mcontact.PriorityNormal); verr != nil {
			return nil, verr
		}
		rows, err = s.queries.ListContactsByStatus(ctx, string(status))
	}
	if err != nil {
		return nil, err
	}
	out := make([]mcontact.Contact, len(rows))
	for i, r := range rows {
		out[i] = ConvertToModelContact(r)
	}
	return out, nil
}

// UpdateStatus sets status, priority and notes. Empty priority keeps the current one.
func (s ContactService) UpdateStatus(ctx context.Context, id int64, status mcontact.Status, priority mcontact.Priority, notes *string) (mcontact.Contact, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return mcontact.Contact{}, err
	}
	if priority == "" {
		priority = current.Priority
	}
	if status == "" {
		status = current.Status
	}
	if err := mcontact.ValidateStatus(status, priority); err != nil {
		return mcontact.Contact{}, err
	}
	n := current.Notes
	if notes != nil {
		n = *notes
	}
	row, err := s.queries.UpdateContactStatus(ctx, gen.UpdateContactStatusParams{
		Status:    string(status),
		Priority:  string(priority),
		Notes:     n,
		UpdatedAt: dbtime.Unix(),
		ID:        id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mcontact.Contact{}, ErrNoContactFound
		}
		return mcontact.Contact{}, err
	}
	return ConvertToModelContact(row), nil
}

func (s ContactService) MarkRead(ctx context.Context, id int64) (mcontact.Contact, error) {
	return s.UpdateStatus(ctx, id, mcontact.StatusRead, "", nil)
}

func (s ContactService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.queries.DeleteContact(ctx, id)
}
