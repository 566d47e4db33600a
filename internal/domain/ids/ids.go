// Package ids holds the branded identifier types shared by the training domain.
// Each kind is its own named string type so an employee id cannot be passed where
// a program code is expected without an explicit conversion.
package ids

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

type (
	EmployeeID  string
	ProgramCode string
	SessionID   string
	ResultID    string
	TeamID      string
	TraineeID   string
	MeetingID   string
)

var (
	employeeIDRegex  = regexp.MustCompile(`^[A-Z]{2,5}-?[0-9]{3,}$`)
	programCodeRegex = regexp.MustCompile(`^[A-Z]{2,6}-[A-Z0-9]{3,}$`)
	sessionIDRegex   = regexp.MustCompile(`^SES-[A-Za-z0-9][A-Za-z0-9-]{2,}$`)
	resultIDRegex    = regexp.MustCompile(`^RES-[A-Za-z0-9][A-Za-z0-9-]{2,}$`)
	teamIDRegex      = regexp.MustCompile(`^TEAM-[A-Za-z0-9][A-Za-z0-9-]{2,}$`)
	traineeIDRegex   = regexp.MustCompile(`^TRN-[A-Za-z0-9][A-Za-z0-9-]{2,}$`)
	meetingIDRegex   = regexp.MustCompile(`^MTG-[A-Za-z0-9][A-Za-z0-9-]{2,}$`)
)

// raw extracts the underlying string from value. Anything that is not a string
// (or one of the branded kinds) yields ok=false.
func raw(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case EmployeeID:
		return string(v), true
	case ProgramCode:
		return string(v), true
	case SessionID:
		return string(v), true
	case ResultID:
		return string(v), true
	case TeamID:
		return string(v), true
	case TraineeID:
		return string(v), true
	case MeetingID:
		return string(v), true
	default:
		return "", false
	}
}

func matches(re *regexp.Regexp, value any) bool {
	s, ok := raw(value)
	if !ok || s == "" {
		return false
	}
	return re.MatchString(s)
}

// IsEmployeeID reports whether value is a well-formed employee id such as EMP001.
func IsEmployeeID(value any) bool { return matches(employeeIDRegex, value) }

// IsProgramCode reports whether value is a well-formed program code such as SAFE-101.
func IsProgramCode(value any) bool { return matches(programCodeRegex, value) }

func IsSessionID(value any) bool { return matches(sessionIDRegex, value) }

func IsResultID(value any) bool { return matches(resultIDRegex, value) }

func IsTeamID(value any) bool { return matches(teamIDRegex, value) }

func IsTraineeID(value any) bool { return matches(traineeIDRegex, value) }

func IsMeetingID(value any) bool { return matches(meetingIDRegex, value) }

// CreateEmployeeID validates raw and returns it branded. ok is false when raw is invalid.
func CreateEmployeeID(raw string) (EmployeeID, bool) {
	if !IsEmployeeID(raw) {
		return "", false
	}
	return EmployeeID(raw), true
}

func CreateProgramCode(raw string) (ProgramCode, bool) {
	if !IsProgramCode(raw) {
		return "", false
	}
	return ProgramCode(raw), true
}

func CreateSessionID(raw string) (SessionID, bool) {
	if !IsSessionID(raw) {
		return "", false
	}
	return SessionID(raw), true
}

func CreateResultID(raw string) (ResultID, bool) {
	if !IsResultID(raw) {
		return "", false
	}
	return ResultID(raw), true
}

func CreateTeamID(raw string) (TeamID, bool) {
	if !IsTeamID(raw) {
		return "", false
	}
	return TeamID(raw), true
}

func CreateTraineeID(raw string) (TraineeID, bool) {
	if !IsTraineeID(raw) {
		return "", false
	}
	return TraineeID(raw), true
}

func CreateMeetingID(raw string) (MeetingID, bool) {
	if !IsMeetingID(raw) {
		return "", false
	}
	return MeetingID(raw), true
}

// The Unsafe constructors skip validation. Use them only where the value was
// already validated before it was persisted (row scans, fixtures).

func UnsafeEmployeeID(raw string) EmployeeID   { return EmployeeID(raw) }
func UnsafeProgramCode(raw string) ProgramCode { return ProgramCode(raw) }
func UnsafeSessionID(raw string) SessionID     { return SessionID(raw) }
func UnsafeResultID(raw string) ResultID       { return ResultID(raw) }
func UnsafeTeamID(raw string) TeamID           { return TeamID(raw) }
func UnsafeTraineeID(raw string) TraineeID     { return TraineeID(raw) }
func UnsafeMeetingID(raw string) MeetingID     { return MeetingID(raw) }

// generate returns prefix followed by an upper-cased UUIDv7. v7 keeps generated
// ids roughly time ordered, same as the uuidv7() defaults in the schema.
func generate(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + strings.ToUpper(id.String())
}

func NewSessionID() SessionID { return SessionID(generate("SES-")) }
func NewResultID() ResultID   { return ResultID(generate("RES-")) }
func NewTeamID() TeamID       { return TeamID(generate("TEAM-")) }
func NewTraineeID() TraineeID { return TraineeID(generate("TRN-")) }
func NewMeetingID() MeetingID { return MeetingID(generate("MTG-")) }
