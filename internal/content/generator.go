package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/MKhiriev/umay/models"
)

var (
	ErrUnknownCategory = errors.New("unknown content category")
	ErrInvalidWeek     = errors.New("pregnancy week must be between 1 and 42")
	ErrEmptyTopic      = errors.New("topic is required")
)

// Content categories known to the generator.
const (
	CategoryNutrition   = "nutrition"
	CategoryHealth      = "health"
	CategoryPreparation = "preparation"
	CategoryDevelopment = "development"
)

// GeneratorAuthor signs generated drafts.
const GeneratorAuthor = "UMAY"

type entry struct {
	title   string
	summary string
	body    string
}

// catalogue holds one template set per category. Templates see a
// templateData value.
var catalogue = map[string]entry{
	CategoryNutrition: {
		title:   `{{.Topic}}: питание{{if .Week}} на {{.Week}} неделе{{end}}`,
		summary: `Что важно в рационе {{.Trimester}}.`,
		body: `{{.Topic}}.
{{if .Week}}На {{.Week}} неделе беременности{{else}}Во время беременности{{end}} организму нужно больше белка, железа и фолиевой кислоты.
Старайтесь есть небольшими порциями 5-6 раз в день и пить достаточно воды.
{{.Advice}}
Перед приемом витаминов и добавок посоветуйтесь с врачом.`,
	},
	CategoryHealth: {
		title:   `{{.Topic}}: здоровье мамы{{if .Week}} ({{.Week}} неделя){{end}}`,
		summary: `На что обратить внимание {{.Trimester}}.`,
		body: `{{.Topic}}.
Регулярно измеряйте давление и следите за отеками.
{{.Advice}}
Если появились кровянистые выделения, сильная головная боль или боль в животе, сразу обратитесь к врачу.`,
	},
	CategoryPreparation: {
		title:   `{{.Topic}}: подготовка к родам`,
		summary: `Как подготовиться к родам {{.Trimester}}.`,
		body: `{{.Topic}}.
Заранее соберите сумку в роддом: документы, обменную карту, вещи для мамы и малыша.
{{.Advice}}
Обсудите с акушеркой план родов и способы обезболивания.`,
	},
	CategoryDevelopment: {
		title:   `{{.Topic}}: развитие малыша{{if .Week}} на {{.Week}} неделе{{end}}`,
		summary: `Как растет малыш {{.Trimester}}.`,
		body: `{{.Topic}}.
{{.Advice}}
Разговаривайте с малышом и отмечайте его шевеления в дневнике.`,
	},
}

// trimesterAdvice is indexed by trimester (1..3); index 0 is used when no
// week is given.
var trimesterAdvice = [4]string{
	"Каждый срок беременности по-своему важен, регулярно посещайте врача.",
	"В первом триместре формируются все органы малыша, избегайте лекарств без назначения.",
	"Во втором триместре малыш начинает активно двигаться, а мама чувствует прилив сил.",
	"В третьем триместре малыш набирает вес, больше отдыхайте и считайте шевеления.",
}

var trimesterNames = [4]string{
	"во время беременности",
	"в первом триместре",
	"во втором триместре",
	"в третьем триместре",
}

type templateData struct {
	Topic     string
	Week      int
	Trimester string
	Advice    string
}

type compiled struct {
	title, summary, body *template.Template
}

// Generator fills article drafts from a fixed template catalogue. The same
// request always produces the same article.
type Generator struct {
	templates map[string]compiled
}

// NewGenerator parses the catalogue.
func NewGenerator() (*Generator, error) {
	g := &Generator{templates: make(map[string]compiled, len(catalogue))}
	for category, e := range catalogue {
		var (
			c   compiled
			err error
		)
		if c.title, err = template.New(category + ".title").Parse(e.title); err != nil {
			return nil, fmt.Errorf("parse %s title: %w", category, err)
		}
		if c.summary, err = template.New(category + ".summary").Parse(e.summary); err != nil {
			return nil, fmt.Errorf("parse %s summary: %w", category, err)
		}
		if c.body, err = template.New(category + ".body").Parse(e.body); err != nil {
			return nil, fmt.Errorf("parse %s body: %w", category, err)
		}
		g.templates[category] = c
	}
	return g, nil
}

// Categories returns the known categories.
func (g *Generator) Categories() []string {
	return []string{CategoryNutrition, CategoryHealth, CategoryPreparation, CategoryDevelopment}
}

// Generate builds a pending draft for feed. An empty category defaults to
// health.
func (g *Generator) Generate(feed models.Feed, req models.GenerateRequest) (models.Article, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return models.Article{}, ErrEmptyTopic
	}
	if req.Week < 0 || req.Week > 42 {
		return models.Article{}, ErrInvalidWeek
	}
	category := req.Category
	if category == "" {
		category = CategoryHealth
	}
	tmpl, ok := g.templates[category]
	if !ok {
		return models.Article{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	trimester := Trimester(req.Week)
	data := templateData{
		Topic:     topic,
		Week:      req.Week,
		Trimester: trimesterNames[trimester],
		Advice:    trimesterAdvice[trimester],
	}

	var title, summary, body bytes.Buffer
	for _, step := range []struct {
		t   *template.Template
		out *bytes.Buffer
	}{{tmpl.title, &title}, {tmpl.summary, &summary}, {tmpl.body, &body}} {
		if err := step.t.Execute(step.out, data); err != nil {
			return models.Article{}, fmt.Errorf("execute %s: %w", step.t.Name(), err)
		}
	}

	article := models.Article{
		Feed:     feed,
		Title:    title.String(),
		Summary:  summary.String(),
		Body:     body.String(),
		Category: category,
		Author:   GeneratorAuthor,
		Origin:   models.OriginGenerated,
	}
	Prepare(&article)

	return article, nil
}

// Trimester maps a pregnancy week to 1..3, or 0 when the week is unknown.
func Trimester(week int) int {
	switch {
	case week <= 0:
		return 0
	case week <= 13:
		return 1
	case week <= 27:
		return 2
	}
	return 3
}
