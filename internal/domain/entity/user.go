package entity

// UserState состояние аннотатора в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingImage UserState = "awaiting_image" // Ожидание изображения для разметки
	StateAnnotating    UserState = "annotating"     // Идёт разметка изображения
)

// User аннотатор, работающий через бота
type User struct {
	ID      int64              // Telegram User ID
	ChatID  int64              // Telegram Chat ID
	State   UserState          // Текущее состояние пользователя
	Session *AnnotationSession // Открытый сеанс разметки, nil вне разметки
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// Attach открывает сеанс разметки.
func (u *User) Attach(s *AnnotationSession) {
	u.Session = s
	u.State = StateAnnotating
}

// Detach закрывает сеанс и возвращает пользователя в меню.
func (u *User) Detach() {
	u.Session = nil
	u.State = StateMainMenu
}
