package domain

// RawResponse is the decoded JSON body of the status endpoint, untyped until validated.
type RawResponse = any

// Status enumerates review states reported by the status endpoint.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Record keys inside a single homework entry.
const (
	FieldHomeworks    = "homeworks"
	FieldHomeworkName = "homework_name"
	FieldStatus       = "status"
)

// Verdicts maps every known status to the sentence sent to the chat.
var Verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the sentence for a status and whether the status is known.
func (s Status) Verdict() (string, bool) {
	v, ok := Verdicts[s]
	return v, ok
}

// Homework is one tracked item after interpretation.
type Homework struct {
	Name   string
	Status Status
}
