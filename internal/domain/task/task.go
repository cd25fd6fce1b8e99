package task

import "encoding/json"

type Task interface {
	TaskType() string
	TaskValue() ([]byte, error)
}

// Types lists every task type that owns a stream
var Types = []string{
	(&LeadDeliveryTask{}).TaskType(),
	(&LeadRetryTask{}).TaskType(),
}

// DefaultTaskValue marshals a task to JSON
func DefaultTaskValue(task any) ([]byte, error) {
	return json.Marshal(task)
}

func UnmarshalTask[T Task](data []byte) (T, error) {
	var t T
	err := json.Unmarshal(data, &t)
	return t, err
}
