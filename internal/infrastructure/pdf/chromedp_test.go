package pdf

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChromedpRenderer_Defaults(t *testing.T) {
	r := NewChromedpRenderer(Config{})
	defer r.Close()

	assert.Equal(t, defaultTimeout, r.timeout)
	assert.NotNil(t, r.logger)

	remote := NewChromedpRenderer(Config{RemoteURL: "ws://chrome:9222", Timeout: time.Second})
	defer remote.Close()
	assert.Equal(t, time.Second, remote.timeout)
}

func TestRenderPDF_EmptyDocument(t *testing.T) {
	r := NewChromedpRenderer(Config{})
	defer r.Close()

	_, err := r.RenderPDF(context.Background(), "   ", "Payslip")
	require.ErrorIs(t, err, ErrEmptyDocument)
}

func TestWrapDocument(t *testing.T) {
	full := "<!DOCTYPE html><html><body>x</body></html>"
	assert.Equal(t, full, wrapDocument(full, "ignored"))

	wrapped := wrapDocument("<p>net pay</p>", "Payslip <Ana>")
	assert.True(t, strings.HasPrefix(wrapped, "<!DOCTYPE html>"))
	assert.Contains(t, wrapped, "<title>Payslip &lt;Ana&gt;</title>")
	assert.Contains(t, wrapped, "<body><p>net pay</p></body>")
}

func TestFooterTemplate(t *testing.T) {
	f := footerTemplate("Payslip & co")
	assert.Contains(t, f, "Payslip &amp; co")
	assert.Contains(t, f, `class="pageNumber"`)
	assert.Contains(t, f, `class="totalPages"`)
}
