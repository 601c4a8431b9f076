package bot

import (
	"fmt"
	"html"

	"eco-actions/internal/model"
)

// displayDateLayout is how dates are shown to users (DD.MM.YYYY).
const displayDateLayout = "02.01.2006"

func formatAction(action model.Action) string {
	dateText := action.Date
	if parsed, err := model.ParseDate(action.Date); err == nil {
		dateText = parsed.Format(displayDateLayout)
	}

	return fmt.Sprintf(
		"✨ <b>Название:</b> %s\n"+
			"🌱 <b>Описание:</b> %s\n"+
			"🗓️ <b>Дата:</b> %s\n"+
			"📍 <b>Место:</b> %s",
		escape(orUnknown(action.Title)),
		escape(orUnknown(action.Description)),
		escape(dateText),
		escape(orUnknown(action.Location)),
	)
}

func formatUser(user model.User) string {
	return fmt.Sprintf(
		"👤 <b>Имя:</b> %s\n"+
			"🏘️ <b>Город:</b> %s\n"+
			"🏫 <b>Класс:</b> %s\n"+
			"✉️ <b>Username:</b> %s",
		escape(orUnknown(user.Name)),
		escape(orUnknown(user.City)),
		escape(orUnknown(user.Grade)),
		escape(orUnknown(user.Username)),
	)
}

func orUnknown(value string) string {
	if value == "" {
		return "Не указано"
	}
	return value
}

func escape(s string) string {
	return html.EscapeString(s)
}
