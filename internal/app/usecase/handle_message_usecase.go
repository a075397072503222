package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fardannozami/ecoplay/internal/domain"
)

// IncomingMessage is one chat message addressed to the bot.
type IncomingMessage struct {
	SenderID   string // phone number, stable across messages
	SenderName string
	Text       string // message text or image caption
	PhotoRef   string // non-empty when the message carries an image
}

// ChatUsecases are the services reachable from chat commands.
type ChatUsecases struct {
	Auth        *AuthUsecase
	Watering    *SubmitWateringUsecase
	Quiz        *SubmitQuizAttemptUsecase
	Activity    *SubmitActivityUsecase
	Redeem      *RedeemRewardUsecase
	JoinEvent   *JoinEventUsecase
	Leaderboard *GetLeaderboardUsecase
	Profile     *GetProfileUsecase
	Catalog     *CatalogUsecase
}

type HandleMessageUsecase struct {
	uc  ChatUsecases
	log *zap.Logger
}

func NewHandleMessageUsecase(uc ChatUsecases, logger *zap.Logger) *HandleMessageUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HandleMessageUsecase{uc: uc, log: logger}
}

type chatCommand func(ctx context.Context, msg IncomingMessage, args string) (string, error)

func (h *HandleMessageUsecase) commands() map[string]chatCommand {
	return map[string]chatCommand{
		"#water":       h.water,
		"#activity":    h.activity,
		"#quiz":        h.listQuizzes,
		"#answer":      h.answer,
		"#redeem":      h.redeem,
		"#rewards":     h.listRewards,
		"#events":      h.listEvents,
		"#join":        h.join,
		"#points":      h.points,
		"#leaderboard": h.leaderboard,
		"#help":        h.help,
	}
}

// Execute routes a message to its command. Messages that are not commands
// get an empty reply.
func (h *HandleMessageUsecase) Execute(ctx context.Context, msg IncomingMessage) (string, error) {
	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, "#") {
		return "", nil
	}

	word := strings.Fields(text)[0]
	cmd, ok := h.commands()[strings.ToLower(word)]
	if !ok {
		return "", nil
	}
	if strings.TrimSpace(msg.SenderName) == "" {
		msg.SenderName = msg.SenderID
	}

	reply, err := cmd(ctx, msg, strings.TrimSpace(text[len(word):]))
	if err != nil {
		return h.replyForError(msg, err)
	}
	return reply, nil
}

func (h *HandleMessageUsecase) session(ctx context.Context, msg IncomingMessage) (domain.Session, error) {
	return h.uc.Auth.EnsureChatUser(ctx, msg.SenderID, msg.SenderName)
}

func (h *HandleMessageUsecase) water(ctx context.Context, msg IncomingMessage, note string) (string, error) {
	if msg.PhotoRef == "" {
		return "📷 Send a photo of your watered plant with the caption #water to log today's watering.", nil
	}
	sess, err := h.session(ctx, msg)
	if err != nil {
		return "", err
	}
	out, err := h.uc.Watering.Execute(ctx, sess, msg.PhotoRef, note)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("💧 Watering logged, %s! +%d pts. Streak: %d days 🔥 Total: %d pts.%s",
		msg.SenderName, out.PointsAwarded, out.User.WateringStreak, out.User.Points, badgeLine(out.NewBadges)), nil
}

func (h *HandleMessageUsecase) activity(ctx context.Context, msg IncomingMessage, args string) (string, error) {
	typ, note, _ := strings.Cut(args, " ")
	if typ == "" {
		return activityUsage(), nil
	}
	if msg.PhotoRef == "" {
		return "", domain.ErrMissingEvidence
	}
	sess, err := h.session(ctx, msg)
	if err != nil {
		return "", err
	}
	out, err := h.uc.Activity.Execute(ctx, sess, typ, note, msg.PhotoRef)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🌿 Activity received, %s! +%d pts now, pending verification. Total: %d pts.%s",
		msg.SenderName, out.PointsAwarded, out.User.Points, badgeLine(out.NewBadges)), nil
}

func (h *HandleMessageUsecase) listQuizzes(ctx context.Context, _ IncomingMessage, _ string) (string, error) {
	quizzes, err := h.uc.Catalog.Quizzes(ctx)
	if err != nil {
		return "", err
	}
	if len(quizzes) == 0 {
		return "No quizzes available right now.", nil
	}

	sb := strings.Builder{}
	sb.WriteString("📝 Quizzes\n")
	for i, q := range quizzes {
		sb.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, q.Title))
		for j, qq := range q.Questions {
			sb.WriteString(fmt.Sprintf("Q%d (%d pts). %s\n", j+1, qq.Value(), qq.Prompt))
			for k, opt := range qq.Options {
				sb.WriteString(fmt.Sprintf("   %d) %s\n", k+1, opt))
			}
		}
	}
	sb.WriteString("\nAnswer with #answer <quiz number> <option per question>, e.g. #answer 1 2,1,3,1,2")
	return sb.String(), nil
}

func (h *HandleMessageUsecase) answer(ctx context.Context, msg IncomingMessage, args string) (string, error) {
	ref, rest, _ := strings.Cut(args, " ")
	if ref == "" || strings.TrimSpace(rest) == "" {
		return "Usage: #answer <quiz number> <option per question>, e.g. #answer 1 2,1,3,1,2", nil
	}
	answers, err := parseAnswers(rest)
	if err != nil {
		return "", err
	}

	quizzes, err := h.uc.Catalog.Quizzes(ctx)
	if err != nil {
		return "", err
	}
	quizID := ref
	title := ref
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(quizzes) {
		quizID = quizzes[n-1].ID
	}
	for _, q := range quizzes {
		if q.ID == quizID {
			title = q.Title
		}
	}

	sess, err := h.session(ctx, msg)
	if err != nil {
		return "", err
	}
	out, err := h.uc.Quiz.Execute(ctx, sess, quizID, answers)
	if err != nil {
		return "", err
	}
	last := out.User.QuizzesTaken[len(out.User.QuizzesTaken)-1]
	return fmt.Sprintf("📝 %s: %d/%d correct, +%d pts. Total: %d pts.%s",
		title, last.CorrectCount, last.TotalQuestions, out.PointsAwarded, out.User.Points, badgeLine(out.NewBadges)), nil
}

func (h *HandleMessageUsecase) redeem(ctx context.Context, msg IncomingMessage, args string) (string, error) {
	rewards := h.uc.Catalog.Rewards()
	n, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || n < 1 || n > len(rewards) {
		return "Usage: #redeem <reward number>. See #rewards for the list.", nil
	}
	reward := rewards[n-1]

	sess, err := h.session(ctx, msg)
	if err != nil {
		return "", err
	}
	out, err := h.uc.Redeem.Execute(ctx, sess, reward.Name, reward.Cost)
	if errors.Is(err, domain.ErrInsufficientPoints) {
		return fmt.Sprintf("Not enough points for %s (%d pts). Check #points 🌱", reward.Name, reward.Cost), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🎁 %s redeemed %s for %d pts. Remaining: %d pts.", msg.SenderName, reward.Name, reward.Cost, out.User.Points), nil
}

func (h *HandleMessageUsecase) listRewards(_ context.Context, _ IncomingMessage, _ string) (string, error) {
	sb := strings.Builder{}
	sb.WriteString("🎁 Rewards\n")
	for i, r := range h.uc.Catalog.Rewards() {
		sb.WriteString(fmt.Sprintf("%d. %s - %d pts\n", i+1, r.Name, r.Cost))
	}
	sb.WriteString("\nRedeem with #redeem <number>")
	return sb.String(), nil
}

func (h *HandleMessageUsecase) listEvents(ctx context.Context, _ IncomingMessage, _ string) (string, error) {
	events, err := h.uc.Catalog.Events(ctx)
	if err != nil {
		return "", err
	}
	if len(events) == 0 {
		return "No events scheduled yet.", nil
	}

	sb := strings.Builder{}
	sb.WriteString("📅 Events\n")
	for i, e := range events {
		sb.WriteString(fmt.Sprintf("%d. %s - %s (%d joined)\n", i+1, e.Title, e.Date.Format("02-01-2006"), len(e.Participants)))
		if e.Description != "" {
			sb.WriteString("   " + e.Description + "\n")
		}
	}
	sb.WriteString("\nJoin with #join <number>")
	return sb.String(), nil
}

func (h *HandleMessageUsecase) join(ctx context.Context, msg IncomingMessage, args string) (string, error) {
	ref := strings.TrimSpace(args)
	if ref == "" {
		return "Usage: #join <event number>. See #events for the list.", nil
	}
	events, err := h.uc.Catalog.Events(ctx)
	if err != nil {
		return "", err
	}
	eventID, title := ref, ref
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(events) {
		eventID = events[n-1].ID
	}
	for _, e := range events {
		if e.ID == eventID {
			title = e.Title
		}
	}

	sess, err := h.session(ctx, msg)
	if err != nil {
		return "", err
	}
	if _, err := h.uc.JoinEvent.Execute(ctx, sess, eventID); err != nil {
		return "", err
	}
	return fmt.Sprintf("📅 %s joined %s. See you there!", msg.SenderName, title), nil
}

func (h *HandleMessageUsecase) points(ctx context.Context, msg IncomingMessage, _ string) (string, error) {
	sess, err := h.session(ctx, msg)
	if err != nil {
		return "", err
	}
	p, err := h.uc.Profile.Execute(ctx, sess)
	if err != nil {
		return "", err
	}

	watered := "not yet 💧"
	if p.WateredToday {
		watered = "done ✅"
	}
	badges := "-"
	if len(p.User.Badges) > 0 {
		badges = strings.Join(p.User.Badges, ", ")
	}
	return fmt.Sprintf("🌱 %s\nPoints: %d\nStreak: %d days\nWatered today: %s\nQuizzes taken: %d\nBadges: %s",
		p.User.DisplayName(), p.User.Points, p.Streak, watered, p.QuizCount, badges), nil
}

func (h *HandleMessageUsecase) leaderboard(ctx context.Context, _ IncomingMessage, _ string) (string, error) {
	return h.uc.Leaderboard.Execute(ctx)
}

func (h *HandleMessageUsecase) help(_ context.Context, _ IncomingMessage, _ string) (string, error) {
	return strings.Join([]string{
		"🌱 EcoPlay commands",
		"#water [note] - photo of your watered plant, once a day",
		"#activity <type> <note> - photo of an eco activity",
		"#quiz / #answer <quiz> <options>",
		"#rewards / #redeem <number>",
		"#events / #join <number>",
		"#points",
		"#leaderboard",
	}, "\n"), nil
}

// replyForError turns user-recoverable errors into a reply. Anything else is
// returned for the caller to log.
func (h *HandleMessageUsecase) replyForError(msg IncomingMessage, err error) (string, error) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return fmt.Sprintf("%s already watered today, come back tomorrow 😉", msg.SenderName), nil
	case errors.Is(err, domain.ErrMissingEvidence):
		return "📷 Please attach a photo as evidence.", nil
	case errors.Is(err, domain.ErrMissingNote):
		return "✏️ Please describe what you did. " + activityUsage(), nil
	case errors.Is(err, domain.ErrQuizNotFound):
		return "Quiz not found. See #quiz for the list.", nil
	case errors.Is(err, domain.ErrEventNotFound):
		return "Event not found. See #events for the list.", nil
	case errors.Is(err, domain.ErrAlreadyJoined):
		return fmt.Sprintf("%s already joined this event 👍", msg.SenderName), nil
	case errors.Is(err, domain.ErrInsufficientPoints):
		return "Not enough points. Check #points 🌱", nil
	case errors.As(err, &verr):
		return "⚠️ " + verr.Error(), nil
	case errors.Is(err, domain.ErrStorageUnavailable):
		h.log.Error("chat_command_storage_failed", zap.String("sender", msg.SenderID), zap.Error(err))
		return "⚠️ Storage is unavailable right now, please try again later.", nil
	}
	return "", err
}

func activityUsage() string {
	types := make([]string, 0, len(domain.ActivityTypes()))
	for _, t := range domain.ActivityTypes() {
		types = append(types, string(t))
	}
	return fmt.Sprintf("Usage: #activity <%s> <note>, with a photo attached.", strings.Join(types, "|"))
}

func badgeLine(badges []string) string {
	if len(badges) == 0 {
		return ""
	}
	return "\n🏅 New badge: " + strings.Join(badges, ", ")
}

// parseAnswers reads 1-based option numbers separated by commas or spaces
// and returns 0-based indices.
func parseAnswers(s string) ([]int, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	answers := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return nil, domain.Invalid("answers", "use option numbers like 2,1,3")
		}
		answers = append(answers, n-1)
	}
	return answers, nil
}
