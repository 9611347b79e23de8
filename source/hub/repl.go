package hub

import (
	"github.com/lmorg/readline"

	"github.com/tim-hardcastle/lair/source/text"
)

// StartHub runs the REPL until 'hub quit' or the end of input.
func StartHub(hub *Hub) {
	rline := readline.NewInstance()
	for {
		rline.SetPrompt(makePrompt(hub))
		line, e := rline.Readline()
		if e != nil {
			hub.log.Debugf("readline: %v", e)
			hub.quit()
			return
		}
		if hub.Feed(line) {
			return
		}
	}
}

func makePrompt(hub *Hub) string {
	if hub.IsBuffering() {
		return text.INDENT_PROMPT
	}
	if hub.Failed() {
		return text.Red(text.PROMPT)
	}
	return text.PROMPT
}
