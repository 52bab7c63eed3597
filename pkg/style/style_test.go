package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestMarkupStrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "nothing to see", "nothing to see"},
		{"single tag", "[added]Added file[/added] .bashrc", "Added file .bashrc"},
		{"nested tags", "[bold][error]Error[/error][/bold] x", "Error x"},
		{"unknown tag kept", "[shrug]x[/shrug]", "[shrug]x[/shrug]"},
		{"several tags", "[removed]a[/removed] [updated]b[/updated]", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.input))
		})
	}
}

func TestMarkupRenderKeepsContent(t *testing.T) {
	out := Render("[added]Added link[/added] [path]/home/u/.vimrc[/path]")
	assert.Contains(t, out, "Added link")
	assert.Contains(t, out, "/home/u/.vimrc")
	assert.NotContains(t, out, "[added]")
	assert.NotContains(t, out, "[/path]")
}

func TestAddStyle(t *testing.T) {
	p := NewMarkupParser()
	p.AddStyle("shout", lipgloss.NewStyle().Bold(true))
	assert.Equal(t, "hey", p.Strip("[shout]hey[/shout]"))
}

func TestAggregate(t *testing.T) {
	assert.Equal(t, StatusComplete, Aggregate(nil))
	assert.Equal(t, StatusComplete, Aggregate([]Status{StatusComplete, StatusComplete}))
	assert.Equal(t, StatusPending, Aggregate([]Status{StatusComplete, StatusPending}))
	assert.Equal(t, StatusDrifted, Aggregate([]Status{StatusPending, StatusDrifted}))
	assert.Equal(t, StatusBroken, Aggregate([]Status{StatusBroken, StatusDrifted, StatusComplete}))
}

func TestStatusSymbolAndStyle(t *testing.T) {
	assert.Equal(t, "✓", StatusSymbol(StatusComplete))
	assert.Equal(t, "✗", StatusSymbol(StatusBroken))
	for _, s := range []Status{StatusComplete, StatusPending, StatusDrifted, StatusBroken} {
		assert.NotEmpty(t, StatusSymbol(s))
		assert.Contains(t, StatusStyle(s).Sprint(string(s)), string(s))
	}
}
