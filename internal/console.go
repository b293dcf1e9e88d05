package internal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"shoutd/internal/controllers"
	"strings"
	"sync"
)

// Console is the local stand-in for a game host: it reads
// "actor<TAB>line" records and prints replies. It is also the Broadcaster
// every scheduled reminder goes through.
type Console struct {
	mu  sync.Mutex
	in  io.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out}
}

func NewStdConsole() *Console {
	return NewConsole(os.Stdin, os.Stdout)
}

func (c *Console) Broadcast(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, message)
}

// Reply prints private lines addressed to actor and then the broadcast lines.
func (c *Console) Reply(actor string, r controllers.Reply) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range r.Private {
		_, _ = fmt.Fprintf(c.out, "@%s %s\n", actor, line)
	}
	for _, line := range r.Broadcast {
		_, _ = fmt.Fprintln(c.out, line)
	}
}

// ParseRecord splits one input record. Records without a tab are ignored.
func ParseRecord(record string) (actor, line string, ok bool) {
	actor, line, ok = strings.Cut(strings.TrimRight(record, "\r\n"), "\t")
	actor = strings.TrimSpace(actor)
	if !ok || actor == "" {
		return "", "", false
	}
	return actor, line, true
}

// Serve feeds every record to handle until the input ends.
func (c *Console) Serve(handle func(actor, line string)) error {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		actor, line, ok := ParseRecord(scanner.Text())
		if !ok {
			continue
		}
		handle(actor, line)
	}
	return scanner.Err()
}
