// Package dto содержит объекты передачи данных HTTP-слоя.
package dto

import (
	"time"

	"myflix/internal/domain/entities"
)

// birthdayLayout формат даты рождения в запросах.
const birthdayLayout = "2006-01-02"

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
	Email    string `json:"Email"`
	Birthday string `json:"Birthday"`
}

// UpdateUserRequest содержит данные для обновления профиля.
// Пустой Password означает "пароль не менять".
type UpdateUserRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
	Email    string `json:"Email"`
	Birthday string `json:"Birthday"`
}

// LoginRequest содержит учетные данные для входа.
type LoginRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

// UserResponse содержит публичное представление пользователя.
// Хэш пароля наружу не отдается.
type UserResponse struct {
	ID             string     `json:"_id"`
	Username       string     `json:"Username"`
	Email          string     `json:"Email"`
	Birthday       *time.Time `json:"Birthday,omitempty"`
	FavoriteMovies []string   `json:"FavoriteMovies"`
}

// LoginResponse содержит пользователя и выпущенный токен.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// GenreResponse содержит вложенный объект жанра.
type GenreResponse struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// DirectorResponse содержит вложенный объект режиссера.
type DirectorResponse struct {
	Name  string     `json:"Name"`
	Bio   string     `json:"Bio"`
	Birth *time.Time `json:"Birth,omitempty"`
	Death *time.Time `json:"Death,omitempty"`
}

// MovieResponse содержит публичное представление фильма.
type MovieResponse struct {
	ID          string           `json:"_id"`
	Title       string           `json:"Title"`
	Description string           `json:"Description"`
	Genre       GenreResponse    `json:"Genre"`
	Director    DirectorResponse `json:"Director"`
}

// ValidationErrorResponse содержит список нарушенных правил валидации.
type ValidationErrorResponse struct {
	Errors []ValidationErrorItem `json:"errors"`
}

// ValidationErrorItem описывает одно нарушенное правило.
type ValidationErrorItem struct {
	Msg string `json:"msg"`
}

// ParseBirthday разбирает дату рождения из запроса.
// Пустая строка означает отсутствие даты.
func ParseBirthday(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(birthdayLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// UserToResponse конвертирует доменного пользователя в ответ API.
func UserToResponse(user *entities.User) UserResponse {
	favorites := user.FavoriteMovies
	if favorites == nil {
		favorites = []string{}
	}
	return UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Birthday:       user.Birthday,
		FavoriteMovies: favorites,
	}
}

// MovieToResponse конвертирует доменный фильм в ответ API.
func MovieToResponse(movie *entities.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Genre:       GenreToResponse(&movie.Genre),
		Director:    DirectorToResponse(&movie.Director),
	}
}

// MoviesToResponse конвертирует список фильмов в ответ API.
func MoviesToResponse(movies []*entities.Movie) []MovieResponse {
	responses := make([]MovieResponse, 0, len(movies))
	for _, movie := range movies {
		responses = append(responses, MovieToResponse(movie))
	}
	return responses
}

// GenreToResponse конвертирует вложенный объект жанра.
func GenreToResponse(genre *entities.Genre) GenreResponse {
	return GenreResponse{
		Name:        genre.Name,
		Description: genre.Description,
	}
}

// DirectorToResponse конвертирует вложенный объект режиссера.
func DirectorToResponse(director *entities.Director) DirectorResponse {
	return DirectorResponse{
		Name:  director.Name,
		Bio:   director.Bio,
		Birth: director.Birth,
		Death: director.Death,
	}
}
