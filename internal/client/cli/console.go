package cli

import (
	"bufio"
	"fmt"
	"io"
	"sync"
)

// ConsoleUI implements view.UI on a terminal.
type ConsoleUI struct {
	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	page string
}

func NewConsoleUI(reader *bufio.Reader, out io.Writer) *ConsoleUI {
	return &ConsoleUI{reader: reader, out: out, page: "/"}
}

func (c *ConsoleUI) Notify(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, "! "+msg)
}

// Confirm treats a failed read as "no".
func (c *ConsoleUI) Confirm(question string) bool {
	ok, err := GetYesNo(c.reader, question, c.out)
	return err == nil && ok
}

func (c *ConsoleUI) Navigate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = path
	fmt.Fprintln(c.out, "-> "+path)
}

// CloseModal has nothing to dismiss on a terminal.
func (c *ConsoleUI) CloseModal(string) {}

func (c *ConsoleUI) ShowFieldError(field, msg string) {
	if msg == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "! %s: %s\n", field, msg)
}

// Page is the path of the last navigation.
func (c *ConsoleUI) Page() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}
