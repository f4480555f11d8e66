package mysqldialect

import (
	"fmt"
	"log"
)

// warnf logs a non-fatal diagnostic.
func warnf(format string, args ...any) {
	log.Printf("warning: "+format, args...)
}

// diagnostics accumulates the non-fatal conditions hit while parsing, so a
// caller can inspect how much of a reflection was best-effort. A nil
// receiver logs without recording.
type diagnostics struct {
	msgs []string
}

func (d *diagnostics) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("warning: %s", msg)
	if d != nil {
		d.msgs = append(d.msgs, msg)
	}
}

func (d *diagnostics) infof(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Print(msg)
	if d != nil {
		d.msgs = append(d.msgs, msg)
	}
}

// Messages returns the recorded diagnostics in order.
func (d *diagnostics) Messages() []string {
	if d == nil {
		return nil
	}
	return d.msgs
}
