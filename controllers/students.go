package controllers

import (
	"net/http"
	"strings"

	"dumbbell/models"
	"dumbbell/services"
	"dumbbell/tools"

	"github.com/gin-gonic/gin"
)

// POST /api/v1/students (public signup)
func CreateStudent(c *gin.Context) {
	var in services.SignUpInput
	if !bindBody(c, &in) {
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}

	res, err := services.SignUp(db, in, conf.Security.BcryptCost)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"student": res.Student, "token": res.Token})
}

// GET /api/v1/students
// Superusers may filter by user, name and email; everyone else only sees
// their own profile.
func GetStudents(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	page, limit := tools.GetPaginationParams(c)

	q := db.Model(&models.Student{})
	if user.IsSuperuser {
		userID, present, ok := QueryID(c, "user")
		if !ok {
			return
		}
		if present {
			q = q.Where("user_id = ?", userID)
		}
		if name := strings.TrimSpace(c.Query("name")); name != "" {
			q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, tools.ContainsPattern(strings.ToLower(name)))
		}
		if email := strings.TrimSpace(c.Query("email")); email != "" {
			q = q.Where("email = ?", strings.ToLower(email))
		}
	} else {
		q = q.Where("user_id = ?", user.ID)
	}

	var total int
	if err := q.Count(&total).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	students := []models.Student{}
	if err := q.Order("id asc").Offset(tools.Offset(page, limit)).Limit(limit).Find(&students).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"students": students, "pagination": tools.NewPaginationMetadata(total, page, limit)})
}

// GET /api/v1/students/:id
func GetStudentByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	user, _ := GetUserLogged(c)
	db, ok := database(c)
	if !ok {
		return
	}

	var student models.Student
	if err := db.First(&student, id).Error; err != nil {
		RespondError(c, "aluno não encontrado", http.StatusNotFound)
		return
	}
	if err := authorizeStudent(db, user, student.ID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"student": student})
}

// PUT|PATCH /api/v1/students/:id
func UpdateStudent(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var patch services.StudentPatch
	if !bindBody(c, &patch) {
		return
	}
	user, _ := GetUserLogged(c)
	db, ok := database(c)
	if !ok {
		return
	}
	if err := authorizeStudent(db, user, id); err != nil {
		RespondServiceError(c, err)
		return
	}

	student, err := services.UpdateStudent(db, id, patch, conf.Security.BcryptCost)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"student": student})
}

// DELETE /api/v1/students/:id
// Removes the student together with its login.
func DeleteStudent(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	user, _ := GetUserLogged(c)
	db, ok := database(c)
	if !ok {
		return
	}
	if err := authorizeStudent(db, user, id); err != nil {
		RespondServiceError(c, err)
		return
	}

	if err := services.DeleteStudent(db, id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
