package bot

import "math/rand"

var ecoTips = []string{
	"♻️ Используйте многоразовые сумки вместо пластиковых.",
	"🗑️ Сортируйте мусор и сдавайте его на переработку.",
	"💧 Экономьте воду и электроэнергию.",
	"🚲 Предпочитайте общественный транспорт или велосипед.",
	"🍎 Покупайте продукты местного производства.",
	"🍽️ Откажитесь от одноразовой посуды и упаковки.",
	"📦 Покупайте товары с минимальной упаковкой.",
	"🛠️ Ремонтируйте вещи вместо того, чтобы выбрасывать их.",
	"🤝 Поддерживайте экологически ответственные компании.",
	"🎉 Участвуйте в экологических акциях и мероприятиях.",
	"💡 Используйте энергосберегающие лампы.",
	"🌱 Собирайте дождевую воду для полива растений.",
	"🍂 Компостируйте органические отходы.",
	"🚫 Избегайте использования химических веществ в саду и огороде.",
}

func randomTip() string {
	return ecoTips[rand.Intn(len(ecoTips))]
}
