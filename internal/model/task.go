package model

// Task is the domain model for a task entry.
// Its position in the list is its only identity.
type Task struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Deadline    string `json:"deadline" yaml:"deadline"`
}
