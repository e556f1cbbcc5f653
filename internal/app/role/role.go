package role

// Role роль пользователя в системе
type Role int

const (
	Employee Role = iota // Сотрудник департамента, подаёт заявки
	Reviewer             // Рецензент, рассматривает заявки
	Admin                // Администратор
)

func (r Role) String() string {
	switch r {
	case Employee:
		return "employee"
	case Reviewer:
		return "reviewer"
	case Admin:
		return "admin"
	}
	return "unknown"
}
