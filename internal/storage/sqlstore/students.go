package sqlstore

import (
	"context"
	"fmt"

	"activityCalendar/internal/models"
)

func (s *Storage) Students(ctx context.Context) ([]models.Student, error) {
	query := `
		SELECT id, name, guardian_name, age
		FROM students
		ORDER BY name ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var student models.Student
		err = rows.Scan(
			&student.ID,
			&student.Name,
			&student.GuardianName,
			&student.Age,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, student)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}

	return students, nil
}
