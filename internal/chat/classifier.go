// AngelaMos | 2026
// classifier.go

package chat

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

type Category string

const (
	CategoryGreeting   Category = "greeting"
	CategoryStatus     Category = "status"
	CategoryTime       Category = "time"
	CategoryCost       Category = "cost"
	CategoryHelp       Category = "help"
	CategoryEscalation Category = "escalation"
	CategoryDefault    Category = "default"
)

type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
	LanguageAuto    Language = "auto"
)

// Reply is the outcome of classifying one inbound message.
type Reply struct {
	Category   Category
	Text       string
	NeedsHuman bool
}

// CarContext is what the bot may tell a customer about their car.
type CarContext struct {
	ID           int64      `db:"car_id"`
	Status       string     `db:"status"`
	CurrentPhase *string    `db:"current_phase"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

func (c *CarContext) LastUpdate() time.Time {
	if c.UpdatedAt != nil {
		return *c.UpdatedAt
	}
	return c.CreatedAt
}

type rule struct {
	category Category
	keywords []string
}

// rules are checked in order; the first rule with a matching keyword wins.
var rules = []rule{
	{CategoryGreeting, []string{"مرحبا", "اهلا", "hello"}},
	{CategoryStatus, []string{"حالة", "status"}},
	{CategoryTime, []string{"وقت", "متى", "time"}},
	{CategoryCost, []string{"سعر", "تكلفة", "cost", "price"}},
	{CategoryHelp, []string{"مساعدة", "help"}},
	{CategoryEscalation, []string{
		"شكوى", "مشكلة", "مستعجل", "مدير",
		"complaint", "problem", "urgent", "manager",
	}},
}

var responses = map[Category]map[Language]string{
	CategoryGreeting: {
		LanguageArabic:  "مرحباً! أنا مساعد الورشة الذكي. كيف أقدر أساعدك اليوم؟",
		LanguageEnglish: "Hello! I am the smart garage assistant. How can I help you today?",
	},
	CategoryStatus: {
		LanguageArabic:  "أستطيع تحديثك بحالة سيارتك. اكتب رقم السيارة أو رقم هاتفك المسجل.",
		LanguageEnglish: "I can update you on your car status. Please provide your car number or registered phone.",
	},
	CategoryTime: {
		LanguageArabic:  "وقت الإصلاح يعتمد على نوع العمل. التشخيص الأولي عادةً من 1 إلى 2 ساعة.",
		LanguageEnglish: "Repair time depends on the type of job. Initial diagnosis is usually 1–2 hours.",
	},
	CategoryCost: {
		LanguageArabic:  "التكلفة يتم تحديدها بعد التشخيص. أسعارنا تنافسية وشفافة.",
		LanguageEnglish: "Cost is determined after diagnosis. Our prices are competitive and transparent.",
	},
	CategoryHelp: {
		LanguageArabic:  "اكتب: حالة | وقت | تكلفة | شكوى | مدير للحصول على خيارات أكثر.",
		LanguageEnglish: "Type: status | time | cost | complaint | manager for more options.",
	},
	CategoryEscalation: {
		LanguageArabic:  "سأقوم بتحويل استفسارك لمسؤول الورشة لأن طلبك مهم.",
		LanguageEnglish: "I am forwarding your request to the garage manager because it matters to us.",
	},
	CategoryDefault: {
		LanguageArabic:  "لم أفهم سؤالك بالضبط. حاول تعيد صياغته أو اكتب \"مساعدة\".",
		LanguageEnglish: "I did not fully understand. Please rephrase or type \"help\".",
	},
}

var statusTemplates = map[Language]struct {
	format  string
	noPhase string
}{
	LanguageArabic: {
		format:  "\n\nحالة سيارتك الحالية:\nالحالة: %s\nالمرحلة: %s\nآخر تحديث: %s",
		noPhase: "غير محددة",
	},
	LanguageEnglish: {
		format:  "\n\nYour car right now:\nStatus: %s\nPhase: %s\nLast update: %s",
		noPhase: "not set",
	},
}

// Classifier maps free text to a canned reply. It holds no mutable state
// and is safe for concurrent use.
type Classifier struct {
	lang Language
}

// NewClassifier falls back to Arabic for an unknown language setting.
func NewClassifier(lang string) *Classifier {
	switch l := Language(strings.ToLower(strings.TrimSpace(lang))); l {
	case LanguageArabic, LanguageEnglish, LanguageAuto:
		return &Classifier{lang: l}
	default:
		return &Classifier{lang: LanguageArabic}
	}
}

// Classify is deterministic: the same text and car always produce the same
// reply. car may be nil.
func (c *Classifier) Classify(text string, car *CarContext) Reply {
	lang := c.languageFor(text)
	category := categorize(text)

	reply := Reply{
		Category:   category,
		Text:       responses[category][lang],
		NeedsHuman: category == CategoryEscalation,
	}

	if category == CategoryStatus && car != nil {
		reply.Text += describeCar(car, lang)
	}

	return reply
}

func categorize(text string) Category {
	msg := strings.ToLower(strings.TrimSpace(text))
	if msg == "" {
		return CategoryDefault
	}

	for _, rl := range rules {
		for _, kw := range rl.keywords {
			if strings.Contains(msg, kw) {
				return rl.category
			}
		}
	}

	return CategoryDefault
}

func (c *Classifier) languageFor(text string) Language {
	if c.lang != LanguageAuto {
		return c.lang
	}
	if strings.TrimSpace(text) == "" || hasArabic(text) {
		return LanguageArabic
	}
	return LanguageEnglish
}

func hasArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}

func describeCar(car *CarContext, lang Language) string {
	tmpl := statusTemplates[lang]

	phase := tmpl.noPhase
	if car.CurrentPhase != nil && *car.CurrentPhase != "" {
		phase = *car.CurrentPhase
	}

	return fmt.Sprintf(tmpl.format,
		car.Status,
		phase,
		car.LastUpdate().UTC().Format(time.RFC3339),
	)
}
