// Package verdict classifies the end of a harness run and maps every outcome
// to a process exit code.
package verdict

import "fmt"

// Code is the process exit code that reports an outcome.
type Code int

// Exit codes.
const (
	CodePassed               Code = 0
	CodeNoImage              Code = 1
	CodeUnreadableImage      Code = 2
	CodeBurstContinuity      Code = 3
	CodeBurstAddress         Code = 4
	CodeBurstSense           Code = 5
	CodeDUTError             Code = 6
	CodeGeneric              Code = 7
	CodePeripheralMismatch   Code = 8
	CodePeripheralIncomplete Code = 9
	CodePeripheral1Mismatch  Code = 10
)

var codeNames = map[Code]string{
	CodePassed:               "passed",
	CodeNoImage:              "no memory image",
	CodeUnreadableImage:      "unreadable memory image",
	CodeBurstContinuity:      "burst continuity violation",
	CodeBurstAddress:         "burst address sequencing violation",
	CodeBurstSense:           "burst write-enable sense violation",
	CodeDUTError:             "register/memory mismatch reported by DUT",
	CodeGeneric:              "simulation failed",
	CodePeripheralMismatch:   "peripheral output mismatch or overflow",
	CodePeripheralIncomplete: "peripheral output incomplete",
	CodePeripheral1Mismatch:  "peripheral 1 output mismatch or overflow",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return fmt.Sprintf("code %d", int(c))
}

// A Failure is a fatal condition raised by a checker.
type Failure struct {
	Code    Code
	Message string
}

// Failf creates a Failure with a formatted message.
func Failf(code Code, format string, args ...interface{}) *Failure {
	return &Failure{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s (exit %d): %s", f.Code, int(f.Code), f.Message)
}

// Kind is the lifecycle state of a verdict.
type Kind int

// Verdict kinds.
const (
	Running Kind = iota
	Failed
	Passed
)

func (k Kind) String() string {
	switch k {
	case Running:
		return "running"
	case Failed:
		return "failed"
	case Passed:
		return "passed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// A Verdict is the outcome of a run. Cycle is the clock cycle at which the
// verdict became terminal.
type Verdict struct {
	Kind    Kind
	Code    Code
	Message string
	Cycle   uint64
}

// IsTerminal tells if the run has ended.
func (v Verdict) IsTerminal() bool {
	return v.Kind != Running
}

func (v Verdict) String() string {
	switch v.Kind {
	case Passed:
		return "OK : Simulation passed!"
	case Failed:
		return fmt.Sprintf("Error : %s at cycle %d (exit %d)",
			v.Message, v.Cycle, int(v.Code))
	default:
		return "running"
	}
}

// A Recorder holds the verdict of one run. The first terminal verdict wins and
// is never overwritten.
type Recorder struct {
	v Verdict
}

// Current returns the verdict.
func (r *Recorder) Current() Verdict {
	return r.v
}

// IsTerminal tells if a terminal verdict has been recorded.
func (r *Recorder) IsTerminal() bool {
	return r.v.IsTerminal()
}

// Fail records a failure at the given cycle. A nil failure is ignored. It
// returns true if the failure became the verdict.
func (r *Recorder) Fail(f *Failure, cycle uint64) bool {
	if f == nil || r.v.IsTerminal() {
		return false
	}

	r.v = Verdict{Kind: Failed, Code: f.Code, Message: f.Message, Cycle: cycle}

	return true
}

// Pass records success at the given cycle. It returns true if the run was
// still running.
func (r *Recorder) Pass(cycle uint64) bool {
	if r.v.IsTerminal() {
		return false
	}

	r.v = Verdict{Kind: Passed, Code: CodePassed, Message: "passed", Cycle: cycle}

	return true
}
