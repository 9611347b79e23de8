package hub

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/sirupsen/logrus"

	"github.com/tim-hardcastle/lair/source/database"
	"github.com/tim-hardcastle/lair/source/err"
	"github.com/tim-hardcastle/lair/source/service"
	"github.com/tim-hardcastle/lair/source/settings"
	"github.com/tim-hardcastle/lair/source/text"
	"github.com/tim-hardcastle/lair/source/token"
)

type Hub struct {
	sv      *service.Service
	out     io.Writer
	store   *database.Store
	lastErr error
	failed  bool
	buffer  []string // Program text typed into the REPL which hasn't been run yet.
	log     *logrus.Entry
}

// New makes a hub with a fresh session. If the config names a database, the script store is opened
// on it.
func New(cfg settings.Config, out io.Writer) (*Hub, error) {
	if out == nil {
		out = os.Stdout
	}
	sv, e := service.New(cfg, out)
	if e != nil {
		return nil, e
	}
	hub := &Hub{sv: sv, out: out, log: settings.Stage("hub")}
	if cfg.Database.Driver != "" {
		if e := hub.configDb(cfg.Database.Driver, cfg.Database.DSN); e != nil {
			return nil, e
		}
	}
	return hub, nil
}

// Do takes one complete piece of input. If it begins with 'hub' it's a hub command; otherwise it's
// program text for the current session. It returns true if the hub should quit.
func (hub *Hub) Do(input string) bool {
	hub.failed = false
	if strings.TrimSpace(input) == "" {
		return false
	}
	hubWords := strings.Fields(input)
	if hubWords[0] == "hub" {
		if len(hubWords) == 1 {
			hub.WriteError("you need to say what you want the hub to do.")
			return false
		}
		words, e := shlex.Split(strings.TrimSpace(input)[4:])
		if e != nil || len(words) == 0 {
			hub.WriteError("couldn't parse hub instruction.")
			return false
		}
		return hub.DoHubCommand(words[0], words[1:])
	}
	hub.report(hub.sv.Run(input))
	return false
}

// Feed takes one line of REPL input. Hub commands are done at once; program text is kept until an
// empty line, so that a definition can be typed over several lines.
func (hub *Hub) Feed(line string) bool {
	if len(hub.buffer) == 0 {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return false
		}
		if trimmed == "hub" || strings.HasPrefix(trimmed, "hub ") {
			return hub.Do(trimmed)
		}
	}
	if strings.TrimSpace(line) != "" {
		hub.buffer = append(hub.buffer, line)
		return false
	}
	input := strings.Join(hub.buffer, "\n") + "\n"
	hub.buffer = nil
	return hub.Do(input)
}

func (hub *Hub) IsBuffering() bool {
	return len(hub.buffer) > 0
}

func (hub *Hub) DoHubCommand(verb string, args []string) bool {
	hub.failed = false
	hub.log.WithField("args", args).Debugf("hub %s", verb)
	if n, ok := arities[verb]; ok && len(args) != n {
		hub.WriteError("'hub " + verb + "' takes " + text.Plural(n, "argument") + ".")
		return false
	}
	switch verb {
	case "config":
		if len(args) != 3 || args[0] != "db" {
			hub.WriteError("the only thing you can configure is the database, with 'hub config db <driver> <dsn>'.")
			return false
		}
		if e := hub.configDb(args[1], args[2]); e != nil {
			hub.WriteError(e.Error())
			return false
		}
		hub.WriteString(text.OK + "\n")
	case "drivers":
		hub.WriteString("\n" + database.GetDriverOptions() + "\n")
	case "drop":
		if hub.needsStore() {
			return false
		}
		if e := hub.store.Delete(args[0]); e != nil {
			hub.WriteError(e.Error())
			return false
		}
		hub.WriteString(text.OK + "\n")
	case "help":
		hub.WriteString(text.HELP + hubHelp)
	case "load":
		if hub.needsStore() {
			return false
		}
		code, e := hub.store.Load(args[0])
		if e != nil {
			hub.WriteError(e.Error())
			return false
		}
		hub.report(hub.sv.Run(code))
	case "quit":
		hub.quit()
		return true
	case "reset":
		if e := hub.sv.Reset(); e != nil {
			hub.WriteError(e.Error())
			return false
		}
		hub.WriteString(text.OK + "\n")
	case "run":
		hub.report(hub.sv.RunFile(args[0]))
	case "scripts":
		if hub.needsStore() {
			return false
		}
		names, e := hub.store.List()
		if e != nil {
			hub.WriteError(e.Error())
			return false
		}
		if len(names) == 0 {
			hub.WriteString("There are no stored scripts.\n")
			return false
		}
		hub.WriteString("\n")
		for _, name := range names {
			hub.WriteString(text.GOOD_BULLET + name + "\n")
		}
		hub.WriteString("\n")
	case "store":
		if len(args) == 0 || len(args) > 2 {
			hub.WriteError("'hub store' takes a file, and optionally a name to store it under first.")
			return false
		}
		if hub.needsStore() {
			return false
		}
		name, file := text.ExtractFileName(args[0]), args[0]
		if len(args) == 2 {
			name, file = args[0], args[1]
		}
		code, e := service.GetSourceCode(file)
		if e == nil {
			e = hub.store.Save(name, code)
		}
		if e != nil {
			hub.WriteError(e.Error())
			return false
		}
		hub.WriteString(text.OK + "\n")
	case "tokens":
		code, e := service.GetSourceCode(args[0])
		if e != nil {
			hub.report(e)
			return false
		}
		ts, e := hub.sv.Tokens(code)
		if e != nil {
			hub.report(e)
			return false
		}
		token.Dump(hub.out, ts)
	case "tree":
		code, e := service.GetSourceCode(args[0])
		if e != nil {
			hub.report(e)
			return false
		}
		forest, e := hub.sv.Tree(code)
		if e != nil {
			hub.report(e)
			return false
		}
		hub.WriteString(forest.String())
	case "why":
		if hub.lastErr == nil {
			hub.WriteString("There are no errors to explain.\n")
			return false
		}
		hub.WriteString("\n" + err.Explain(hub.lastErr) + "\n\n")
	default:
		hub.WriteError("the hub doesn't know the command " + text.Emph(verb) + ". Try 'hub help'.")
	}
	return false
}

var arities = map[string]int{"drivers": 0, "drop": 1, "help": 0, "load": 1, "quit": 0, "reset": 0,
	"run": 1, "scripts": 0, "tokens": 1, "tree": 1, "why": 0}

const hubHelp = "Hub commands are:\n\n" +
	text.BULLET + "hub run <file>              runs a script in the current session\n" +
	text.BULLET + "hub tokens <file>           shows the tokens of a script\n" +
	text.BULLET + "hub tree <file>             shows the syntax tree of a script\n" +
	text.BULLET + "hub why                     explains the last error\n" +
	text.BULLET + "hub reset                   forgets the functions defined so far\n" +
	text.BULLET + "hub config db <driver> <dsn> opens a database for storing scripts\n" +
	text.BULLET + "hub drivers                 lists the database drivers\n" +
	text.BULLET + "hub store [<name>] <file>   stores a script, by default under its file name\n" +
	text.BULLET + "hub load <name>             runs a stored script\n" +
	text.BULLET + "hub scripts                 lists the stored scripts\n" +
	text.BULLET + "hub drop <name>             deletes a stored script\n" +
	text.BULLET + "hub quit                    leaves lair\n\n" +
	"Anything else is run as program text. In the REPL, program text is run when you enter an empty line.\n\n"

func (hub *Hub) configDb(driver, dsn string) error {
	db, e := database.GetdB(driver, dsn)
	if e != nil {
		return e
	}
	store, e := database.NewStore(db, driver)
	if e != nil {
		db.Close()
		return e
	}
	if hub.store != nil {
		hub.store.Close()
	}
	hub.store = store
	return nil
}

func (hub *Hub) needsStore() bool {
	if hub.store == nil {
		hub.WriteError("there is no database. Configure one with 'hub config db <driver> <dsn>'.")
		return true
	}
	return false
}

// report shows an error from a run, and keeps it for 'hub why'.
func (hub *Hub) report(e error) {
	hub.lastErr = e
	hub.failed = e != nil
	if e == nil {
		return
	}
	var lairErr *err.Error
	if errors.As(e, &lairErr) {
		hub.WriteString("\n" + text.BROKEN + text.Red(lairErr.Kind.String()) +
			text.DescribePos(lairErr.Line, lairErr.Offset) + ": " + lairErr.Message + "\n\n")
		hub.WriteString("Explanation available with 'hub why'.\n\n")
		return
	}
	hub.WriteError(e.Error())
}

// Failed says whether the last input or command went wrong.
func (hub *Hub) Failed() bool {
	return hub.failed
}

func (hub *Hub) quit() {
	if hub.store != nil {
		hub.store.Close()
	}
	hub.WriteString(text.OK + "\n" + text.Logo() + "Thank you for using lair. Have a nice day!\n\n")
}

func (hub *Hub) WriteError(s string) {
	hub.failed = true
	hub.WriteString("\n" + text.BROKEN + text.Red("Hub error") + ": " + s + "\n\n")
}

func (hub *Hub) WriteString(s string) {
	io.WriteString(hub.out, s)
}
