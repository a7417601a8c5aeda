package models

type Student struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	GuardianName string `json:"guardian_name"`
	Age          int    `json:"age"`
}
