package models

type UserRole string

const (
	UserRoleCandidate UserRole = "CANDIDATE_ROLE" // Кандидат, видит только свои кандидатуры
	UserRoleRecruiter UserRole = "RECRUITER_ROLE" // Рекрутер, управляет кандидатурами своего подразделения
	UserRoleAdmin     UserRole = "ADMIN_ROLE"     // Администратор организации
)

var roleHumanName = map[UserRole]string{
	UserRoleCandidate: "Кандидат",
	UserRoleRecruiter: "Рекрутер",
	UserRoleAdmin:     "Администратор",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, exist := roleHumanName[r]
	return exist
}

func (r UserRole) CanManageApplications() bool {
	return r == UserRoleRecruiter || r == UserRoleAdmin
}

const SystemUser = "Система"
