package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateBackupFailed - письмо о неудачном резервном копировании.
// Поля: Time, Database, Error.
const TemplateBackupFailed = "backup_failed"

const builtinTemplates = `
{{define "backup_failed"}}<h3>Резервное копирование не выполнено</h3>
<p>Время: {{.Time}}</p>
<p>База данных: {{.Database}}</p>
<p>Ошибка:</p>
<pre>{{.Error}}</pre>{{end}}
`

// TemplateManager - набор html-шаблонов писем
type TemplateManager struct {
	mu  sync.RWMutex
	set *template.Template
}

// NewTemplateManager создает набор со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		set: template.Must(template.New("docflow").Parse(builtinTemplates)),
	}
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	if tm.set.Lookup(templateName) == nil {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tm.set.ExecuteTemplate(&buf, templateName, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

// AddTemplate добавляет шаблон. html/template запрещает Parse после первого Render.
func (tm *TemplateManager) AddTemplate(name string, body string) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if _, err := tm.set.New(name).Parse(body); err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return nil
}
