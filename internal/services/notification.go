package services

import (
	"context"
	"strings"
	"time"

	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/pkg/logger"
	"github.com/hubinova/backend/pkg/metrics"
)

const (
	TriggerRegister        = "register"
	TriggerLogin           = "login"
	TriggerChallengeCreate = "challenge_created"
	TriggerSolutionStatus  = "solution_status"
)

const defaultStatusTemplate = "Olá {nome}, o status da sua solução \"{solucao}\" foi atualizado para: {status}."

// NotificationService sends best-effort messages. Every method makes a
// single attempt and swallows failures after logging them.
type NotificationService struct {
	notifier Notifier
	metrics  *metrics.Metrics
	timeout  time.Duration
}

func NewNotificationService(notifier Notifier, m *metrics.Metrics) *NotificationService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &NotificationService{notifier: notifier, metrics: m, timeout: 10 * time.Second}
}

// Send delivers message to phone. It never returns an error.
func (s *NotificationService) Send(ctx context.Context, trigger, phone, message string) {
	if s == nil {
		return
	}
	normalized := NormalizePhone(phone)
	if normalized == "" {
		s.metrics.NotificationResult(trigger, "skipped")
		logger.Debug().Str("trigger", trigger).Msg("[Notification] no usable phone, skipped")
		return
	}

	// Detached from request cancellation, bounded by the notifier timeout.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.notifier.Notify(sendCtx, normalized, message); err != nil {
		s.metrics.NotificationResult(trigger, "failed")
		logger.Warn().Err(err).Str("trigger", trigger).Str("phone", maskPhone(normalized)).Msg("[Notification] send failed")
		return
	}
	s.metrics.NotificationResult(trigger, "sent")
	logger.Info().Str("trigger", trigger).Str("phone", maskPhone(normalized)).Msg("[Notification] sent")
}

func (s *NotificationService) Welcome(ctx context.Context, user *models.User) {
	msg := "Olá " + firstName(user) + ", seu cadastro no programa de inovação foi realizado com sucesso!"
	s.Send(ctx, TriggerRegister, user.Phone, msg)
}

func (s *NotificationService) LoginAlert(ctx context.Context, user *models.User) {
	msg := "Olá " + firstName(user) + ", um novo acesso à sua conta foi realizado em " +
		time.Now().Format("02/01/2006 15:04") + "."
	s.Send(ctx, TriggerLogin, user.Phone, msg)
}

// ChallengeCreated confirms a new challenge to its contact phone, falling back
// to the creator's phone.
func (s *NotificationService) ChallengeCreated(ctx context.Context, challenge *models.Challenge, creator *models.User) {
	phone := challenge.ContactPhone
	name := challenge.Proposer
	if creator != nil {
		if phone == "" {
			phone = creator.Phone
		}
		if name == "" {
			name = firstName(creator)
		}
	}
	msg := "Olá " + name + ", seu desafio \"" + challenge.Title + "\" foi recebido e está em análise."
	if challenge.Status == models.ChallengeDraft {
		msg = "Olá " + name + ", o rascunho do desafio \"" + challenge.Title + "\" foi salvo."
	}
	s.Send(ctx, TriggerChallengeCreate, phone, msg)
}

// SolutionStatusChanged renders template (or the default one) with the
// {nome}, {solucao} and {status} placeholders.
func (s *NotificationService) SolutionStatusChanged(ctx context.Context, solution *models.Solution, submitter *models.User, statusName, template string) {
	if submitter == nil {
		s.metrics.NotificationResult(TriggerSolutionStatus, "skipped")
		return
	}
	s.Send(ctx, TriggerSolutionStatus, submitter.Phone, RenderStatusMessage(template, submitter, solution, statusName))
}

func RenderStatusMessage(template string, submitter *models.User, solution *models.Solution, statusName string) string {
	if strings.TrimSpace(template) == "" {
		template = defaultStatusTemplate
	}
	return strings.NewReplacer(
		"{nome}", firstName(submitter),
		"{solucao}", solution.Title,
		"{status}", statusName,
	).Replace(template)
}

func firstName(u *models.User) string {
	if u == nil {
		return ""
	}
	if fields := strings.Fields(u.FullName); len(fields) > 0 {
		return fields[0]
	}
	return u.Email
}
