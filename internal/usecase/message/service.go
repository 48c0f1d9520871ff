package message

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/shortid"
)

const maxShortIDAttempts = 3

var (
	msgSubjectLength = fmt.Sprintf("subject must be between 1 and %d characters", domain.MessageSubjectMaxLength)
	msgBodyLength    = fmt.Sprintf("message must be between 1 and %d characters", domain.MessageBodyMaxLength)
	msgNoRecipient   = "recipient does not exist"
	msgSelf          = "you cannot message yourself"

	subjectTag = fmt.Sprintf("required,max=%d", domain.MessageSubjectMaxLength)
	bodyMaxTag = fmt.Sprintf("max=%d", domain.MessageBodyMaxLength)
)

// Renderer turns message markdown into sanitized HTML.
type Renderer interface {
	Render(source string) string
}

type service struct {
	messageRepo domain.MessageRepository
	userRepo    domain.UserRepository
	renderer    Renderer
	validate    *validator.Validate
	newShortID  func() (string, error)
}

var _ domain.MessageUsecase = (*service)(nil)

func NewService(m domain.MessageRepository, u domain.UserRepository, r Renderer) *service {
	return &service{
		messageRepo: m,
		userRepo:    u,
		renderer:    r,
		validate:    validator.New(),
		newShortID:  shortid.New,
	}
}

func (s *service) Send(ctx context.Context, in domain.NewMessage) (*domain.Message, error) {
	var msgs []string

	subject := strings.TrimSpace(in.Subject)
	if err := s.validate.Var(subject, subjectTag); err != nil {
		msgs = append(msgs, msgSubjectLength)
	}
	if s.validate.Var(strings.TrimSpace(in.Body), "required") != nil || s.validate.Var(in.Body, bodyMaxTag) != nil {
		msgs = append(msgs, msgBodyLength)
	}

	recipient, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(in.RecipientUsername))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		msgs = append(msgs, msgNoRecipient)
	case err != nil:
		return nil, err
	case recipient.ID == in.AuthorID:
		msgs = append(msgs, msgSelf)
	}

	if err := domain.NewValidationError(msgs); err != nil {
		return nil, err
	}

	m := &domain.Message{
		AuthorUserID:    in.AuthorID,
		RecipientUserID: recipient.ID,
		Subject:         subject,
		Body:            in.Body,
		BodyHTML:        s.renderer.Render(in.Body),
		Recipient:       recipient,
	}
	for attempt := 1; attempt <= maxShortIDAttempts; attempt++ {
		m.ShortID, err = s.newShortID()
		if err != nil {
			return nil, err
		}
		err = s.messageRepo.Store(ctx, m)
		if !errors.Is(err, domain.ErrConflict) {
			break
		}
		logrus.Warnf("message short id %s already taken (attempt %d/%d)", m.ShortID, attempt, maxShortIDAttempts)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Inbox(ctx context.Context, userID int64) ([]domain.Message, error) {
	return s.messageRepo.FetchInbox(ctx, userID)
}

func (s *service) Outbox(ctx context.Context, userID int64) ([]domain.Message, error) {
	return s.messageRepo.FetchOutbox(ctx, userID)
}

// Get is only allowed for the two participants. Opening it as recipient marks it read.
func (s *service) Get(ctx context.Context, shortID string, viewerID int64) (domain.Message, error) {
	m, err := s.messageRepo.GetByShortID(ctx, shortID)
	if err != nil {
		return domain.Message{}, err
	}

	switch viewerID {
	case m.RecipientUserID:
		if m.DeletedByRecipient {
			return domain.Message{}, domain.ErrNotFound
		}
		if !m.HasBeenRead {
			if err := s.messageRepo.MarkRead(ctx, m.ID); err != nil {
				return domain.Message{}, err
			}
			m.HasBeenRead = true
		}
	case m.AuthorUserID:
		if m.DeletedByAuthor {
			return domain.Message{}, domain.ErrNotFound
		}
	default:
		return domain.Message{}, domain.ErrForbidden
	}
	return m, nil
}

// Delete hides the message from the viewer's side. The row goes once both sides deleted it.
func (s *service) Delete(ctx context.Context, shortID string, viewerID int64) error {
	m, err := s.messageRepo.GetByShortID(ctx, shortID)
	if err != nil {
		return err
	}

	isAuthor := viewerID == m.AuthorUserID
	isRecipient := viewerID == m.RecipientUserID
	if !isAuthor && !isRecipient {
		return domain.ErrForbidden
	}
	if isAuthor {
		m.DeletedByAuthor = true
	}
	if isRecipient {
		m.DeletedByRecipient = true
	}

	if m.DeletedByAuthor && m.DeletedByRecipient {
		return s.messageRepo.Delete(ctx, m.ID)
	}
	return s.messageRepo.Update(ctx, &m)
}
