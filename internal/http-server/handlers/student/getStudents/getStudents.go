package getStudents

import (
	"context"
	"log/slog"
	"net/http"

	"activityCalendar/internal/lib/api/response"
	"activityCalendar/internal/lib/logger/sl"
	"activityCalendar/internal/models"

	"github.com/go-chi/render"
)

type StudentsResponse struct {
	response.Response
	Students []models.Student `json:"students"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StudentsGetter
type StudentsGetter interface {
	Students(ctx context.Context) ([]models.Student, error)
}

func New(log *slog.Logger, studentsGetter StudentsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.student.getStudents.New"

		log := log.With(slog.String("op", op))

		students, err := studentsGetter.Students(r.Context())
		if err != nil {
			log.Error("failed to get students", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get students"))
			return
		}

		log.Info("students retrieved successfully", slog.Int("count", len(students)))

		if students == nil {
			students = []models.Student{}
		}

		render.JSON(w, r, StudentsResponse{
			Response: response.OK(),
			Students: students,
		})
	}
}
