package remote

import "github.com/noah-isme/sma-roster-api/internal/models"

// Table names on the record API.
const (
	studentTable    = "student_c"
	teacherTable    = "teacher_c"
	gradeTable      = "grade_c"
	attendanceTable = "attendance_c"
)

type studentRecord struct {
	ID             int64  `json:"Id,omitempty"`
	FirstName      string `json:"first_name_c"`
	LastName       string `json:"last_name_c"`
	StudentCode    string `json:"student_id_c"`
	GradeLevel     int    `json:"grade_level_c"`
	Section        string `json:"section_c"`
	Email          string `json:"email_c"`
	Phone          string `json:"phone_c"`
	PhotoURL       string `json:"photo_url_c"`
	EnrollmentDate string `json:"enrollment_date_c"`
	Status         string `json:"status_c"`
}

var studentFields = []string{"Id", "first_name_c", "last_name_c", "student_id_c", "grade_level_c", "section_c", "email_c", "phone_c", "photo_url_c", "enrollment_date_c", "status_c"}

func toStudentRecord(s models.Student) studentRecord {
	return studentRecord{
		ID:             s.ID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		StudentCode:    s.StudentCode,
		GradeLevel:     s.GradeLevel,
		Section:        s.Section,
		Email:          s.Email,
		Phone:          s.Phone,
		PhotoURL:       s.PhotoURL,
		EnrollmentDate: s.EnrollmentDate,
		Status:         string(s.Status),
	}
}

func (r studentRecord) model() models.Student {
	return models.Student{
		ID:             r.ID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		StudentCode:    r.StudentCode,
		GradeLevel:     r.GradeLevel,
		Section:        r.Section,
		Email:          r.Email,
		Phone:          r.Phone,
		PhotoURL:       r.PhotoURL,
		EnrollmentDate: r.EnrollmentDate,
		Status:         models.StudentStatus(r.Status),
	}
}

type teacherRecord struct {
	ID               int64  `json:"Id,omitempty"`
	FirstName        string `json:"first_name_c"`
	LastName         string `json:"last_name_c"`
	Email            string `json:"email_c"`
	Phone            string `json:"phone_c"`
	Department       string `json:"department_c"`
	Specialization   string `json:"specialization_c"`
	Qualifications   string `json:"qualifications_c"`
	ExperienceYears  int    `json:"experience_years_c"`
	HireDate         string `json:"hire_date_c"`
	EmploymentStatus string `json:"employment_status_c"`
	PhotoURL         string `json:"photo_url_c"`
}

var teacherFields = []string{"Id", "first_name_c", "last_name_c", "email_c", "phone_c", "department_c", "specialization_c", "qualifications_c", "experience_years_c", "hire_date_c", "employment_status_c", "photo_url_c"}

func toTeacherRecord(t models.Teacher) teacherRecord {
	return teacherRecord{
		ID:               t.ID,
		FirstName:        t.FirstName,
		LastName:         t.LastName,
		Email:            t.Email,
		Phone:            t.Phone,
		Department:       t.Department,
		Specialization:   t.Specialization,
		Qualifications:   t.Qualifications,
		ExperienceYears:  t.ExperienceYears,
		HireDate:         t.HireDate,
		EmploymentStatus: string(t.EmploymentStatus),
		PhotoURL:         t.PhotoURL,
	}
}

func (r teacherRecord) model() models.Teacher {
	return models.Teacher{
		ID:               r.ID,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		Department:       r.Department,
		Specialization:   r.Specialization,
		Qualifications:   r.Qualifications,
		ExperienceYears:  r.ExperienceYears,
		HireDate:         r.HireDate,
		EmploymentStatus: models.EmploymentStatus(r.EmploymentStatus),
		PhotoURL:         r.PhotoURL,
	}
}

type gradeRecord struct {
	ID        int64   `json:"Id,omitempty"`
	StudentID int64   `json:"student_id_c"`
	Subject   string  `json:"subject_c"`
	Score     float64 `json:"score_c"`
	MaxScore  float64 `json:"max_score_c"`
	Date      string  `json:"date_c"`
	Term      string  `json:"term_c"`
}

var gradeFields = []string{"Id", "student_id_c", "subject_c", "score_c", "max_score_c", "date_c", "term_c"}

func toGradeRecord(g models.Grade) gradeRecord {
	return gradeRecord{ID: g.ID, StudentID: g.StudentID, Subject: g.Subject, Score: g.Score, MaxScore: g.MaxScore, Date: g.Date, Term: g.Term}
}

func (r gradeRecord) model() models.Grade {
	return models.Grade{ID: r.ID, StudentID: r.StudentID, Subject: r.Subject, Score: r.Score, MaxScore: r.MaxScore, Date: r.Date, Term: r.Term}
}

type attendanceRecord struct {
	ID        int64  `json:"Id,omitempty"`
	StudentID int64  `json:"student_id_c"`
	Date      string `json:"date_c"`
	Status    string `json:"status_c"`
	Notes     string `json:"notes_c"`
}

var attendanceFields = []string{"Id", "student_id_c", "date_c", "status_c", "notes_c"}

func toAttendanceRecord(a models.AttendanceRecord) attendanceRecord {
	return attendanceRecord{ID: a.ID, StudentID: a.StudentID, Date: a.Date, Status: string(a.Status), Notes: a.Notes}
}

func (r attendanceRecord) model() models.AttendanceRecord {
	return models.AttendanceRecord{ID: r.ID, StudentID: r.StudentID, Date: r.Date, Status: models.AttendanceStatus(r.Status), Notes: r.Notes}
}
