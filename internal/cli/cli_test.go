package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alvinbaena/pwd-strength/internal/config"
	"github.com/alvinbaena/pwd-strength/internal/denylist"
	"github.com/alvinbaena/pwd-strength/internal/report"
	"github.com/alvinbaena/pwd-strength/internal/strength"
	"github.com/manifoldco/promptui"
)

type fakePrompter struct {
	inputs []string
	end    error
	calls  int
}

func (f *fakePrompter) Run() (string, error) {
	f.calls++
	if len(f.inputs) == 0 {
		return "", f.end
	}
	input := f.inputs[0]
	f.inputs = f.inputs[1:]
	return input, nil
}

func testEvaluator(t *testing.T) *strength.Evaluator {
	t.Helper()
	set, err := denylist.Parse(strings.NewReader("password123\nletmein\n"))
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}
	return strength.NewEvaluator(strength.StandardPolicy, set)
}

func TestRunSession_Exit(t *testing.T) {
	for _, exit := range []string{"exit", "EXIT", "Exit"} {
		p := &fakePrompter{inputs: []string{"password123", "", exit, "never read"}}
		var out bytes.Buffer

		if err := runSession(p, &out, testEvaluator(t), report.Options{ShowTime: true}); err != nil {
			t.Fatalf("Session should not fail: %s", err)
		}

		if p.calls != 3 {
			t.Errorf("Session should stop at %q, prompted %d times", exit, p.calls)
		}

		got := out.String()
		if !strings.HasPrefix(got, "Password Strength Checker\n") {
			t.Errorf("Session should start with the banner:\n%s", got)
		}
		if n := strings.Count(got, "Password Analysis:"); n != 2 {
			t.Errorf("Session should analyze 2 passwords, analyzed %d", n)
		}
		if !strings.Contains(got, "- Common password: yes") {
			t.Errorf("password123 should be flagged as common:\n%s", got)
		}
		if !strings.HasSuffix(got, "Goodbye!\n") {
			t.Errorf("Session should end with Goodbye:\n%s", got)
		}
	}
}

func TestRunSession_NotExit(t *testing.T) {
	// only the exact word ends the session
	p := &fakePrompter{inputs: []string{" exit", "exit "}, end: promptui.ErrEOF}
	var out bytes.Buffer

	if err := runSession(p, &out, testEvaluator(t), report.Options{}); err != nil {
		t.Fatalf("Session should not fail: %s", err)
	}
	if n := strings.Count(out.String(), "Password Analysis:"); n != 2 {
		t.Errorf("Padded exit words are passwords, analyzed %d", n)
	}
}

func TestRunSession_Interrupt(t *testing.T) {
	for _, end := range []error{promptui.ErrInterrupt, promptui.ErrEOF} {
		p := &fakePrompter{end: end}
		var out bytes.Buffer

		if err := runSession(p, &out, testEvaluator(t), report.Options{}); err != nil {
			t.Errorf("%s should end the session cleanly: %s", end, err)
		}
		if !strings.HasSuffix(out.String(), "Goodbye!\n") {
			t.Errorf("Session should end with Goodbye:\n%s", out.String())
		}
	}

	broken := errors.New("terminal gone")
	if err := runSession(&fakePrompter{end: broken}, &bytes.Buffer{}, testEvaluator(t), report.Options{}); !errors.Is(err, broken) {
		t.Errorf("Prompt errors should end the session with the error, got %v", err)
	}
}

type failingDenylist struct{}

func (failingDenylist) Contains(string) (bool, error) {
	return false, errors.New("broken")
}

func TestRunSession_EvaluationError(t *testing.T) {
	p := &fakePrompter{inputs: []string{"abc", "exit"}}
	var out bytes.Buffer

	evaluator := strength.NewEvaluator(strength.StandardPolicy, failingDenylist{})
	if err := runSession(p, &out, evaluator, report.Options{}); err != nil {
		t.Fatalf("Lookup errors should not end the session: %s", err)
	}
	if strings.Contains(out.String(), "Password Analysis:") {
		t.Errorf("Failed evaluations should not be rendered:\n%s", out.String())
	}
	if p.calls != 2 {
		t.Errorf("Session should continue after an error, prompted %d times", p.calls)
	}
}

func TestCheckLines(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("Aa1!\r\nletmein\n\n")

	if err := checkLines(in, &out, testEvaluator(t), report.Options{}); err != nil {
		t.Fatalf("Should not fail: %s", err)
	}

	got := out.String()
	if n := strings.Count(got, "Password Analysis:"); n != 3 {
		t.Errorf("Should analyze 3 lines, analyzed %d:\n%s", n, got)
	}
	for _, want := range []string{"- Password: ****\n", "- Password: *******\n", "- Password: \n", "- Entropy: 0.00 bits"} {
		if !strings.Contains(got, want) {
			t.Errorf("output should contain %q:\n%s", want, got)
		}
	}
}

func TestCheckAll(t *testing.T) {
	var out bytes.Buffer
	if err := checkAll(&out, testEvaluator(t), []string{"a", "correct horse battery staple"}, report.Options{}); err != nil {
		t.Fatalf("Should not fail: %s", err)
	}
	if !strings.Contains(out.String(), "WEAK") || !strings.Contains(out.String(), "STRONG") {
		t.Errorf("Should label both passwords:\n%s", out.String())
	}

	evaluator := strength.NewEvaluator(strength.StandardPolicy, failingDenylist{})
	if err := checkAll(&bytes.Buffer{}, evaluator, []string{"abc"}, report.Options{}); err == nil {
		t.Errorf("One shot checks should fail on lookup errors")
	}
}

func TestCreateGCS_OpenDenylist(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "common.txt")
	if err := os.WriteFile(list, []byte("password\nqwerty\ndragon\n"), 0o600); err != nil {
		t.Fatalf("Should not fail writing file: %s", err)
	}
	out := filepath.Join(dir, "common.gcs")

	if err := createGCS(list, out, 1<<20, 2, 1, false); err != nil {
		t.Fatalf("Should not fail creating GCS: %s", err)
	}
	if err := createGCS(list, out, 1<<20, 2, 1, false); err == nil {
		t.Errorf("Should not overwrite without the flag")
	}
	if err := createGCS(list, out, 1<<20, 2, 1, true); err != nil {
		t.Errorf("Should overwrite with the flag: %s", err)
	}

	cfg := config.Config{Denylist: filepath.Join(dir, "missing.txt"), DenylistGCS: out}
	list2, closer, err := openDenylist(cfg, strength.StandardPolicy)
	if err != nil {
		t.Fatalf("Should not fail opening the denylist: %s", err)
	}
	defer closer()

	listed, err := list2.Contains("dragon")
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}
	if !listed {
		t.Errorf("dragon should be listed in the GCS file")
	}

	strict, closer2, err := openDenylist(cfg, strength.StrictPolicy)
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}
	defer closer2()
	if strict != nil {
		t.Errorf("The strict policy should not load a denylist")
	}
}
