package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"eco-actions/internal/client"
	"eco-actions/internal/model"
)

const (
	promptName     = "👋 Привет! Я — ваш помощник в мире экологичных инициатив. Давайте вместе сделаем мир лучше! Для начала, пожалуйста, введите своё имя:"
	promptCity     = "🏘️ Укажите ваш город:"
	promptGrade    = "🏫 Укажите ваш класс (например, 10А):"
	promptUsername = "✍️ Придумайте свой username:"

	promptActionTitle       = "✍️ Введите название акции:"
	promptActionDate        = "🗓️ Введите дату проведения акции в формате YYYY-MM-DD:"
	promptActionLocation    = "📍 Введите место проведения акции:"
	promptActionDescription = "🌱 Введите описание акции:"

	replyRegistrationDone   = "🎉 Регистрация прошла успешно! Что будем делать дальше?"
	replyRegistrationFailed = "😔 Не удалось сохранить данные. Попробуйте /start ещё раз."
	replyProposalDone       = "✅ Отлично! Ваша акция успешно добавлена. Она будет рассмотрена администратором."
	replyProposalFailed     = "😔 Не удалось отправить предложение. Попробуйте позже."
)

// validatorKind tags how a field input is checked before it is stored.
type validatorKind int

const (
	checkNonEmpty validatorKind = iota
	checkDate
	checkUsername
)

// checkInput validates one field input. It returns the cleaned value, or a
// non-empty retry prompt when the input is rejected and the field must be
// asked again.
func (b *Bot) checkInput(ctx context.Context, kind validatorKind, value, emptyRetry string) (string, string) {
	value = strings.TrimSpace(value)
	switch kind {
	case checkNonEmpty:
		if value == "" {
			return "", emptyRetry
		}
	case checkDate:
		if _, err := model.ParseDate(value); err != nil {
			return "", "Неверный формат даты. Пожалуйста, используйте YYYY-MM-DD."
		}
	case checkUsername:
		if value == "" {
			return "", emptyRetry
		}
		available, err := b.client.CheckUsername(ctx, value)
		if err != nil {
			log.Error().Err(err).Msg("username availability check failed")
			return "", "😔 Не удалось проверить username. Попробуйте позже."
		}
		if !available {
			return "", "Этот username уже занят. Придумайте другой:"
		}
	}
	return value, ""
}

// startRegistration opens the registration flow and returns the first prompt.
func (b *Bot) startRegistration(userID int64) string {
	b.sessions.Put(userID, Session{Stage: stageName})
	return promptName
}

// startProposal opens the action-proposal flow and returns the first prompt.
func (b *Bot) startProposal(userID int64) string {
	b.sessions.Put(userID, Session{Stage: stageActionTitle})
	return promptActionTitle
}

// processFlowInput advances the user's active flow with one text input and
// returns the reply. finished reports that the flow ended (committed or
// failed) and the session was cleared.
func (b *Bot) processFlowInput(ctx context.Context, userID int64, text string) (reply string, finished bool) {
	sess, ok := b.sessions.Get(userID)
	if !ok {
		return "", false
	}

	switch sess.Stage {
	case stageName:
		value, retry := b.checkInput(ctx, checkNonEmpty, text, "Имя не может быть пустым. Введите имя:")
		if retry != "" {
			return retry, false
		}
		sess.Registration.Name = value
		sess.Stage = stageCity
		b.sessions.Put(userID, sess)
		return promptCity, false

	case stageCity:
		value, retry := b.checkInput(ctx, checkNonEmpty, text, "Город не может быть пустым. Введите город:")
		if retry != "" {
			return retry, false
		}
		sess.Registration.City = value
		sess.Stage = stageGrade
		b.sessions.Put(userID, sess)
		return promptGrade, false

	case stageGrade:
		value, retry := b.checkInput(ctx, checkNonEmpty, text, "Класс не может быть пустым. Введите класс:")
		if retry != "" {
			return retry, false
		}
		sess.Registration.Grade = value
		sess.Stage = stageUsername
		b.sessions.Put(userID, sess)
		return promptUsername, false

	case stageUsername:
		value, retry := b.checkInput(ctx, checkUsername, text, "Username не может быть пустым. Введите username:")
		if retry != "" {
			return retry, false
		}
		sess.Registration.Username = value
		// Terminal stage: the session is cleared whatever the commit outcome.
		b.sessions.Delete(userID)
		return b.commitRegistration(ctx, userID, sess.Registration), true

	case stageActionTitle:
		value, retry := b.checkInput(ctx, checkNonEmpty, text, "Название акции не может быть пустым. Введите название:")
		if retry != "" {
			return retry, false
		}
		sess.Proposal.Title = value
		sess.Stage = stageActionDate
		b.sessions.Put(userID, sess)
		return promptActionDate, false

	case stageActionDate:
		value, retry := b.checkInput(ctx, checkDate, text, "")
		if retry != "" {
			return retry, false
		}
		sess.Proposal.Date = value
		sess.Stage = stageActionLocation
		b.sessions.Put(userID, sess)
		return promptActionLocation, false

	case stageActionLocation:
		value, retry := b.checkInput(ctx, checkNonEmpty, text, "Место проведения акции не может быть пустым. Введите место:")
		if retry != "" {
			return retry, false
		}
		sess.Proposal.Location = value
		sess.Stage = stageActionDescription
		b.sessions.Put(userID, sess)
		return promptActionDescription, false

	case stageActionDescription:
		value, retry := b.checkInput(ctx, checkNonEmpty, text, "Описание акции не может быть пустым. Введите описание:")
		if retry != "" {
			return retry, false
		}
		sess.Proposal.Description = value
		b.sessions.Delete(userID)
		return b.commitProposal(ctx, userID, sess.Proposal), true

	default:
		b.sessions.Delete(userID)
		return "", false
	}
}

func (b *Bot) commitRegistration(ctx context.Context, userID int64, data registrationData) string {
	user := model.User{
		UserID:   strconv.FormatInt(userID, 10),
		Name:     data.Name,
		City:     data.City,
		Grade:    data.Grade,
		Username: data.Username,
	}
	if err := b.client.CreateUser(ctx, user); err != nil {
		log.Error().Err(err).Int64("user", userID).Msg("failed to create user")
		return replyRegistrationFailed
	}
	log.Info().Int64("user", userID).Str("username", data.Username).Msg("user registered")
	return replyRegistrationDone
}

func (b *Bot) commitProposal(ctx context.Context, userID int64, data proposalData) string {
	action, err := b.client.CreateAction(ctx, client.ActionInput{
		Title:       data.Title,
		Date:        data.Date,
		Location:    data.Location,
		Description: data.Description,
		ProposerID:  strconv.FormatInt(userID, 10),
	})
	if err != nil {
		log.Error().Err(err).Int64("user", userID).Msg("failed to create action")
		return replyProposalFailed
	}
	log.Info().Int64("user", userID).Str("action_id", action.ID).Msg("action proposed")
	return replyProposalDone
}
