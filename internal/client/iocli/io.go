// Package iocli - ввод и вывод команд hubctl
package iocli

//go:generate moq -out io_mock.go . IO

// IO - терминал, с которым работают команды
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadInput читает строку без завершающих пробелов
	ReadInput(prompt string) (string, error)
	// ReadPassword читает строку без эха, если вход - терминал
	ReadPassword(prompt string) (string, error)
	// Confirm задает вопрос да/нет, по умолчанию нет
	Confirm(prompt string) (bool, error)
	Write(p []byte) (n int, err error)
}
