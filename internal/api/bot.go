package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	app "sam-annotator/internal/application"
	"sam-annotator/internal/container"
	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/logger"
)

const (
	msgStart = `👋 Привет! Я помогаю размечать изображения полигонами с помощью модели сегментации.

📸 Отправьте фото, укажите объект рамкой или кликами, и я предложу контуры.

📋 Команды:
/annotate — начать разметку
/help — справка
/cancel — закрыть текущее изображение`

	msgHelp = `ℹ️ Как размечать:

1️⃣ Отправьте фото
2️⃣ Подскажите объект:
   /box x1 y1 x2 y2 — рамка
   /pos x y — точка на объекте
   /neg x y — точка на фоне
3️⃣ Выберите гипотезу: /choose n
4️⃣ Примите объект: /accept [метка] [группа]

✏️ Правка:
/list — список объектов
/delete n… — удалить
/dup n… — копия со сдвигом
/simplify [n…] — прорядить точки
/label n метка [группа] — сменить метку
/undo — отменить последнее изменение
/clear — сбросить подсказку
/preview — показать разметку
/save — сохранить разметку

📂 Каталог на сервере:
/open каталог — открыть первое изображение
/next, /prev — соседнее изображение (разметка сохраняется)

Координаты в пикселях исходного изображения, номера объектов и гипотез с 1.`

	msgAwaitingImage   = "📸 Отправьте изображение для разметки."
	msgCancelled       = "❌ Изображение закрыто без сохранения. Отправьте /annotate, чтобы начать заново."
	msgSendImage       = "📸 Пожалуйста, отправьте изображение или команду. Справка: /help"
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgNoSession       = "📸 Сначала отправьте изображение."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другое."
	msgModelError      = "⚠️ Модель сегментации недоступна. Попробуйте позже."
	msgNoPrediction    = "🤷 Нечего отправить в модель: задайте рамку или точки."
	msgNothingToAccept = "🤷 Нет выбранной гипотезы. Выберите её командой /choose n."
	msgNothingToUndo   = "🤷 Отменять нечего."
	msgPromptCleared   = "🧹 Подсказка сброшена."
	msgSaveError       = "⚠️ Не удалось сохранить разметку."
	msgSaved           = "💾 Разметка сохранена."
	msgOpenDirError    = "⚠️ Не удалось открыть каталог: нет изображений или каталог недоступен."
	msgNoMoreImages    = "🏁 Дальше изображений нет."
)

// duplicateOffset сдвиг копии объекта в пикселях
var duplicateOffset = entity.Point{X: 10, Y: 10}

// Bot представляет Telegram-бота
type Bot struct {
	api *tgbotapi.BotAPI
	app *container.Container
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.Logger.Info("authorized on account", zap.String("username", api.Self.UserName))

	return &Bot{
		api: api,
		app: c,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.app.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		logger.Logger.Error("failed to get user", zap.Int64("user_id", msg.From.ID), zap.Error(err))
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, user)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendImage)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	chatID := msg.Chat.ID
	args := strings.Fields(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		if err := b.app.UserService.Forget(ctx, user.ID); err != nil {
			logger.Logger.Error("failed to reset user", zap.Error(err))
		}
		b.sendMessage(chatID, msgStart)
		return

	case "help":
		b.sendMessage(chatID, msgHelp)
		return

	case "annotate":
		if _, err := b.app.UserService.BeginAnnotation(ctx, user.ID, chatID); err != nil {
			logger.Logger.Error("failed to update user", zap.Error(err))
		}
		b.sendMessage(chatID, msgAwaitingImage)
		return

	case "open":
		if len(args) != 1 {
			b.sendMessage(chatID, "⚠️ Укажите каталог: /open каталог")
			return
		}
		if !b.saveCurrent(ctx, chatID, user) {
			return
		}
		session, err := b.app.NavigationService.OpenDirectory(ctx, args[0])
		if err != nil {
			logger.Logger.Warn("failed to open directory", zap.String("dir", args[0]), zap.Error(err))
			b.sendMessage(chatID, msgOpenDirError)
			return
		}
		b.attach(ctx, user, session)
		return

	case "cancel":
		if _, err := b.app.UserService.Cancel(ctx, user.ID, chatID); err != nil {
			logger.Logger.Error("failed to update user", zap.Error(err))
		}
		b.sendMessage(chatID, msgCancelled)
		return
	}

	session := user.Session
	if session == nil {
		switch msg.Command() {
		case "next", "prev", "box", "pos", "neg", "choose", "accept", "list", "delete", "dup", "simplify", "label", "undo", "clear", "save", "preview":
			b.sendMessage(chatID, msgNoSession)
		default:
			b.sendMessage(chatID, msgUnknownCommand)
		}
		return
	}

	switch msg.Command() {
	case "next", "prev":
		move := b.app.NavigationService.Next
		if msg.Command() == "prev" {
			move = b.app.NavigationService.Previous
		}
		next, err := move(ctx, session)
		if err != nil {
			logger.Logger.Error("failed to switch image", zap.String("image", session.ImagePath), zap.Error(err))
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		if next == session {
			b.sendMessage(chatID, msgNoMoreImages)
			return
		}
		b.attach(ctx, user, next)

	case "box":
		c1, c2, err := parseBox(args)
		if err != nil {
			b.sendMessage(chatID, "⚠️ "+err.Error())
			return
		}
		b.app.SegmentationService.SetBox(session, c1, c2)
		b.predict(ctx, chatID, session)

	case "pos", "neg":
		pt, err := parsePoint(args)
		if err != nil {
			b.sendMessage(chatID, "⚠️ "+err.Error())
			return
		}
		b.app.SegmentationService.AddClick(session, pt, msg.Command() == "pos")
		b.predict(ctx, chatID, session)

	case "choose":
		indices, err := parseIndices(args)
		if err != nil || len(indices) != 1 {
			b.sendMessage(chatID, "⚠️ Укажите номер гипотезы: /choose n")
			return
		}
		if !b.app.SegmentationService.Choose(session, indices[0]) {
			b.sendMessage(chatID, "⚠️ Нет гипотезы с таким номером.")
			return
		}
		b.sendMessage(chatID, formatProposals(session.Proposals))
		b.sendPreview(chatID, session)

	case "accept":
		label, err := parseLabel(args)
		if err != nil {
			b.sendMessage(chatID, "⚠️ "+err.Error())
			return
		}
		label.Label = b.app.Categories.Resolve(label.Label)
		committed := b.app.AnnotationService.Accept(session, &label)
		if len(committed) == 0 {
			b.sendMessage(chatID, msgNothingToAccept)
			return
		}
		b.sendMessage(chatID, fmt.Sprintf("✅ Добавлен объект %q (группа %d, полигонов: %d).",
			committed[0].Label, *committed[0].GroupID, len(committed)))

	case "list":
		b.sendMessage(chatID, formatAnnotations(session.Annotations))

	case "delete":
		indices, err := parseIndices(args)
		if err != nil || len(indices) == 0 {
			b.sendMessage(chatID, "⚠️ Укажите номера объектов: /delete n…")
			return
		}
		n := b.app.AnnotationService.Remove(session, indices...)
		b.sendMessage(chatID, fmt.Sprintf("🗑 Удалено объектов: %d.", n))

	case "dup":
		indices, err := parseIndices(args)
		if err != nil || len(indices) == 0 {
			b.sendMessage(chatID, "⚠️ Укажите номера объектов: /dup n…")
			return
		}
		added := b.app.AnnotationService.Duplicate(session, duplicateOffset, indices...)
		b.sendMessage(chatID, fmt.Sprintf("📑 Добавлено копий: %d.", len(added)))

	case "simplify":
		indices, err := parseIndices(args)
		if err != nil {
			b.sendMessage(chatID, "⚠️ "+err.Error())
			return
		}
		reports := b.app.AnnotationService.Simplify(session, indices...)
		b.sendMessage(chatID, formatSimplify(reports))

	case "label":
		index, label, err := parseEditLabel(args)
		if err != nil {
			b.sendMessage(chatID, "⚠️ "+err.Error())
			return
		}
		label.Label = b.app.Categories.Resolve(label.Label)
		if !b.app.AnnotationService.EditLabel(session, index, label) {
			b.sendMessage(chatID, "⚠️ Нет объекта с таким номером.")
			return
		}
		b.sendMessage(chatID, formatAnnotations(session.Annotations))

	case "undo":
		if !b.app.AnnotationService.Undo(session) {
			b.sendMessage(chatID, msgNothingToUndo)
			return
		}
		b.sendMessage(chatID, "↩️ Отменено.\n\n"+formatAnnotations(session.Annotations))

	case "clear":
		b.app.SegmentationService.ClearPrompt(session)
		b.sendMessage(chatID, msgPromptCleared)

	case "preview":
		b.sendPreview(chatID, session)

	case "save":
		if err := b.app.NavigationService.Save(ctx, session); err != nil {
			logger.Logger.Error("failed to save annotations", zap.String("image", session.ImagePath), zap.Error(err))
			b.sendMessage(chatID, msgSaveError)
			return
		}
		b.sendMessage(chatID, msgSaved)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handlePhoto открывает присланное фото для разметки
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	if !b.saveCurrent(ctx, msg.Chat.ID, user) {
		return
	}

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		logger.Logger.Error("failed to download photo", zap.Error(err))
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	session, err := b.app.NavigationService.Open(ctx, photo.FileUniqueID+".jpg", imageData)
	if err != nil {
		logger.Logger.Error("failed to open image", zap.Error(err))
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	b.attach(ctx, user, session)
}

// saveCurrent сохраняет изменения открытого изображения перед сменой сеанса
func (b *Bot) saveCurrent(ctx context.Context, chatID int64, user *entity.User) bool {
	prev := user.Session
	if prev == nil || !prev.Dirty {
		return true
	}
	if err := b.app.NavigationService.Save(ctx, prev); err != nil {
		logger.Logger.Error("failed to save annotations", zap.String("image", prev.ImagePath), zap.Error(err))
		b.sendMessage(chatID, msgSaveError)
		return false
	}
	return true
}

// attach делает сеанс текущим для пользователя и сообщает об открытом изображении
func (b *Bot) attach(ctx context.Context, user *entity.User, session *entity.AnnotationSession) {
	if err := b.app.UserService.Attach(ctx, user, session); err != nil {
		logger.Logger.Error("failed to update user", zap.Error(err))
	}
	b.sendMessage(user.ChatID, formatOpened(session))
}

// predict отправляет подсказку в модель и показывает гипотезы
func (b *Bot) predict(ctx context.Context, chatID int64, session *entity.AnnotationSession) {
	ok, err := b.app.SegmentationService.Predict(ctx, session)
	if err != nil {
		logger.Logger.Error("prediction failed", zap.String("image", session.ImagePath), zap.Error(err))
		b.sendMessage(chatID, msgModelError)
		return
	}
	if !ok {
		b.sendMessage(chatID, msgNoPrediction)
		return
	}
	b.sendMessage(chatID, formatProposals(session.Proposals))
	b.sendPreview(chatID, session)
}

// sendPreview отправляет изображение с разметкой и выбранной гипотезой
func (b *Bot) sendPreview(chatID int64, session *entity.AnnotationSession) {
	data, err := app.RenderPreview(session)
	if err != nil {
		logger.Logger.Warn("preview is not rendered", zap.Error(err))
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "preview.jpg", Bytes: data})
	if _, err := b.api.Send(photo); err != nil {
		logger.Logger.Error("failed to send preview", zap.Error(err))
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("download file: " + resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		logger.Logger.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
