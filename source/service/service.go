package service

import (
	"embed"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tim-hardcastle/lair/source/ast"
	"github.com/tim-hardcastle/lair/source/evaluator"
	"github.com/tim-hardcastle/lair/source/lexer"
	"github.com/tim-hardcastle/lair/source/parser"
	"github.com/tim-hardcastle/lair/source/settings"
	"github.com/tim-hardcastle/lair/source/token"
)

// Do not under any circumstances remove the following comment.
//
//go:embed test-files/*
var testFolder embed.FS

// A Service is one session of lair: an environment which keeps the functions defined by every
// program it runs, and the error from the last thing it was asked to do.
type Service struct {
	cfg       settings.Config
	env       *evaluator.Environment
	lex       *lexer.Lexer
	out       io.Writer
	lastError error
	log       *logrus.Entry
}

// New returns a service whose builtins write to out.
func New(cfg settings.Config, out io.Writer) (*Service, error) {
	if out == nil {
		out = os.Stdout
	}
	sv := &Service{cfg: cfg, lex: lexer.New(cfg.Indent), out: out, log: settings.Stage("service")}
	return sv, sv.Reset()
}

// Reset forgets every function defined so far.
func (sv *Service) Reset() error {
	env, e := evaluator.StandardEnvironment(sv.cfg, sv.out)
	if e != nil {
		return e
	}
	sv.env = env
	return nil
}

// Run lexes, parses and evaluates a program in the service's environment.
func (sv *Service) Run(code string) error {
	runId := sv.env.NewRun()
	sv.log.WithField("run", runId).Debug("starting run")
	forest, e := sv.Tree(code)
	if e == nil {
		e = evaluator.Run(forest, sv.env)
	}
	sv.lastError = e
	if e != nil {
		sv.log.WithField("run", runId).Debugf("run failed: %v", e)
	}
	return e
}

// RunFile runs the script at the given path.
func (sv *Service) RunFile(scriptFilepath string) error {
	code, e := GetSourceCode(scriptFilepath)
	if e != nil {
		sv.lastError = e
		return e
	}
	return sv.Run(code)
}

// Tokens returns the token stream of a program without parsing it.
func (sv *Service) Tokens(code string) (*token.Stream, error) {
	ts, e := sv.lex.Tokenize([]byte(code))
	sv.lastError = e
	return ts, e
}

// Tree returns the syntax forest of a program without evaluating it.
func (sv *Service) Tree(code string) (*ast.Forest, error) {
	ts, e := sv.Tokens(code)
	if e != nil {
		return nil, e
	}
	forest, e := parser.Parse(ts)
	sv.lastError = e
	return forest, e
}

// LastError returns the error from the last run, or nil if it succeeded.
func (sv *Service) LastError() error {
	return sv.lastError
}

func (sv *Service) IsBroken() bool {
	return sv.lastError != nil
}

func (sv *Service) Environment() *evaluator.Environment {
	return sv.env
}

func (sv *Service) Config() settings.Config {
	return sv.cfg
}

// GetSourceCode reads a script, adding the .lr extension if the path has none. Paths beginning
// with test-files/ are read from the scripts embedded in this package.
func GetSourceCode(scriptFilepath string) (string, error) {
	var sourcebytes []byte
	var e error
	if strings.HasPrefix(scriptFilepath, "test-files/") {
		sourcebytes, e = testFolder.ReadFile(MakeFilepath(scriptFilepath))
	} else {
		sourcebytes, e = os.ReadFile(MakeFilepath(scriptFilepath))
	}
	if e != nil {
		return "", e
	}
	return string(sourcebytes), nil
}

func MakeFilepath(scriptFilepath string) string {
	if strings.HasPrefix(scriptFilepath, "~/") {
		if home, e := os.UserHomeDir(); e == nil {
			scriptFilepath = filepath.Join(home, scriptFilepath[2:])
		}
	}
	if filepath.Ext(scriptFilepath) == "" {
		scriptFilepath = scriptFilepath + ".lr"
	}
	return scriptFilepath
}
