package view

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Notifier печатает короткие цветные уведомления (аналог toast)
type Notifier struct {
	out     io.Writer
	success *color.Color
	failure *color.Color
	warning *color.Color
	info    *color.Color
}

// NewNotifier создает Notifier, пишущий в out
func NewNotifier(out io.Writer, noColor bool) *Notifier {
	n := &Notifier{
		out:     out,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		warning: color.New(color.FgYellow),
		info:    color.New(color.FgCyan),
	}
	if noColor {
		for _, c := range []*color.Color{n.success, n.failure, n.warning, n.info} {
			c.DisableColor()
		}
	} else {
		for _, c := range []*color.Color{n.success, n.failure, n.warning, n.info} {
			c.EnableColor()
		}
	}
	return n
}

// Success выводит сообщение об успехе
func (n *Notifier) Success(msg string) {
	_, _ = fmt.Fprintf(n.out, "%s %s\n", n.success.Sprint("✓"), msg)
}

// Error выводит сообщение об ошибке
func (n *Notifier) Error(msg string) {
	_, _ = fmt.Fprintf(n.out, "%s %s\n", n.failure.Sprint("✗"), msg)
}

// Warning выводит предупреждение
func (n *Notifier) Warning(msg string) {
	_, _ = fmt.Fprintf(n.out, "%s %s\n", n.warning.Sprint("!"), msg)
}

// Info выводит информационное сообщение
func (n *Notifier) Info(msg string) {
	_, _ = fmt.Fprintf(n.out, "%s %s\n", n.info.Sprint("i"), msg)
}
