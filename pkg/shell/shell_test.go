package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"

	"github.com/zhangbiao2009/primitive-db/pkg/db"
	"github.com/zhangbiao2009/primitive-db/pkg/storage/memory"
)

// fakeReader replays scripted lines and records every prompt it was given
type fakeReader struct {
	lines   []string
	errs    map[int]error
	read    int
	prompts []string
	closed  bool
}

func (r *fakeReader) Readline() (string, error) {
	i := r.read
	if i >= len(r.lines) {
		return "", io.EOF
	}
	r.read++
	if err, ok := r.errs[i]; ok {
		return r.lines[i], err
	}
	return r.lines[i], nil
}

func (r *fakeReader) SetPrompt(prompt string) {
	r.prompts = append(r.prompts, prompt)
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func newTestShell(lines ...string) (*Shell, *fakeReader, *bytes.Buffer, *db.DB) {
	reader := &fakeReader{lines: lines}
	var out bytes.Buffer
	sh := New(reader, &out, "primitive-db> ")
	database := db.New(memory.New(), db.Options{Confirmer: sh})
	return sh, reader, &out, database
}

func TestRun(t *testing.T) {
	sh, reader, out, database := newTestShell(
		"create_table users name:str age:int",
		"",
		`insert into users values ("Alice", 30)`,
		"select from users where age >= 30",
		"drop_table users",
		"n",
		"exit",
		"list_tables",
	)

	if err := sh.Run(database); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"Table 'users' created with columns: ID:int, name:str, age:int",
		"Record with ID=1 inserted into table 'users'.",
		"Alice",
		"Operation cancelled.",
		"Goodbye!",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	if reader.read != 7 {
		t.Errorf("lines read = %d, want 7 (stop at exit)", reader.read)
	}

	wantPrompt := fmt.Sprintf(ConfirmPrompt, "drop table")
	found := false
	for _, p := range reader.prompts {
		if p == wantPrompt {
			found = true
		}
	}
	if !found {
		t.Errorf("prompts %q do not include %q", reader.prompts, wantPrompt)
	}
}

func TestRunStopsAtEOF(t *testing.T) {
	sh, _, out, database := newTestShell("list_tables")

	if err := sh.Run(database); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "No tables found") {
		t.Errorf("output = %q, want list_tables result", out.String())
	}
}

func TestRunInterrupt(t *testing.T) {
	sh, reader, _, database := newTestShell("create_table", "", "list_tables")
	reader.errs = map[int]error{
		0: readline.ErrInterrupt,
		1: readline.ErrInterrupt,
	}

	if err := sh.Run(database); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// interrupt with text discards the line, interrupt on an empty line exits
	if reader.read != 2 {
		t.Errorf("lines read = %d, want 2", reader.read)
	}
}

func TestRunReadError(t *testing.T) {
	sh, reader, _, database := newTestShell("help")
	boom := errors.New("terminal gone")
	reader.errs = map[int]error{0: boom}

	if err := sh.Run(database); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
		want  bool
	}{
		{"yes", "y", nil, true},
		{"upper case with spaces", "  Y ", nil, true},
		{"no", "n", nil, false},
		{"full word", "yes", nil, false},
		{"empty", "", nil, false},
		{"interrupt", "", readline.ErrInterrupt, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &fakeReader{lines: []string{tt.input}}
			if tt.err != nil {
				reader.errs = map[int]error{0: tt.err}
			}
			sh := New(reader, io.Discard, "> ")

			got, err := sh.Confirm("delete records")
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if last := reader.prompts[len(reader.prompts)-1]; last != "> " {
				t.Errorf("prompt after Confirm() = %q, want it restored", last)
			}
		})
	}
}

func TestExec(t *testing.T) {
	sh, _, out, database := newTestShell()

	if err := sh.Exec(database, "create_table users name:str"); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if err := sh.Exec(database, "select from missing"); err == nil {
		t.Errorf("Exec() on missing table error = nil")
	}
	if !strings.Contains(out.String(), "Error:") {
		t.Errorf("output = %q, want the error printed", out.String())
	}
}

func TestRunScript(t *testing.T) {
	sh, _, out, database := newTestShell()
	script := strings.NewReader(`# seed data
create_table users name:str

insert into users values ("Alice")
insert into users values ("Bob", 1)
select from users
`)

	err := sh.RunScript(database, script)
	if err == nil || err.Error() != "1 of 4 commands failed" {
		t.Errorf("RunScript() error = %v, want 1 of 4 commands failed", err)
	}
	if !strings.Contains(out.String(), "Alice") {
		t.Errorf("output = %q, want select result", out.String())
	}
}
