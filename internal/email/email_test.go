package email

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type capturingDialer struct {
	messages []*gomail.Message
}

func (d *capturingDialer) DialAndSend(m ...*gomail.Message) error {
	d.messages = append(d.messages, m...)
	return nil
}

func testProvider() (*GomailProvider, *capturingDialer) {
	p := NewGomailProvider(&SMTPConfig{
		Host:      "smtp.example.com",
		Port:      587,
		FromEmail: "docflow@example.com",
		FromName:  "Docflow",
	}, nil)
	d := &capturingDialer{}
	p.dialer = d
	return p, d
}

func TestSendTemplate_BackupFailed(t *testing.T) {
	p, d := testProvider()

	err := p.SendTemplate([]string{"ops@example.com"}, "Backup failed", TemplateBackupFailed, TemplateData{
		"Time":     "2025-04-17 03:00",
		"Database": "docflow",
		"Error":    "pg_dump: <connection refused>",
	})
	require.NoError(t, err)
	require.Len(t, d.messages, 1)

	m := d.messages[0]
	assert.Equal(t, []string{"ops@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Backup failed"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "docflow")
}

func TestRender_EscapesHTML(t *testing.T) {
	tm := NewTemplateManager()
	out, err := tm.Render(TemplateBackupFailed, TemplateData{"Error": "<script>"})
	require.NoError(t, err)
	assert.Contains(t, out, "&lt;script&gt;")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	p := NewGomailProvider(&SMTPConfig{Port: 25}, nil)
	assert.Error(t, p.Validate())
	assert.Error(t, p.Send(&Email{To: []string{"a@b.c"}}))

	ok, _ := testProvider()
	assert.NoError(t, ok.Validate())
	assert.Error(t, ok.Send(&Email{}), "no recipients")

	assert.False(t, (&SMTPConfig{}).Enabled())
	assert.True(t, (&SMTPConfig{Host: "smtp"}).Enabled())
}

func TestAddTemplate(t *testing.T) {
	tm := NewTemplateManager()
	require.NoError(t, tm.AddTemplate("greeting", "<p>{{.Name}}</p>"))

	out, err := tm.Render("greeting", TemplateData{"Name": "Иванов"})
	require.NoError(t, err)
	assert.Equal(t, "<p>Иванов</p>", out)

	assert.Error(t, tm.AddTemplate("broken", "{{.Name"))
}
