package user

// CreateUser форма регистрации пользователя
type CreateUser struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	LocationID *int64 `json:"location_id"`
}

// LoginForm форма входа
type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
