package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"rate": FormatRate,
	"age":  FormatAge,
	"mode": ModeLabel,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no projection result to format")
	}
	var buf bytes.Buffer
	data := struct {
		*domain.ProjectionResult
		HorizonLabel string
		Assumptions  []string
	}{result, HorizonLabel(result), DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
