package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sale_counter_bot/internal/config"
	"sale_counter_bot/internal/dateparse"
	"sale_counter_bot/internal/retry"
	"sale_counter_bot/internal/sales"
	"sale_counter_bot/internal/sheets"
	"sale_counter_bot/internal/telegram"
	"sale_counter_bot/internal/users"
	"sale_counter_bot/internal/window"

	"github.com/rs/zerolog/log"
)

// botAPI is the slice of the Telegram client the dispatcher needs.
type botAPI interface {
	GetUpdates(ctx context.Context, offset int64) ([]telegram.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type bot struct {
	api    botAPI
	agg    *sales.Aggregator
	source sales.RowSource // nil when the sheet backend is not configured
	users  *users.Store
	cfg    *config.Config
	now    func() time.Time
}

func main() {
	log.Debug().Msg("Starting application")
	setupEnvironment()

	ctx := context.Background()
	cfg := config.Load()

	client := telegram.NewClient(cfg.BotToken)
	me, err := client.GetMe(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to authenticate with Telegram")
	}
	log.Info().Str("username", me.Username).Msg("Bot authenticated")

	agg, source := buildAggregator(ctx, cfg)

	b := &bot{
		api:    client,
		agg:    agg,
		source: source,
		users:  users.NewStore(cfg.DataDir, cfg.DefaultUser),
		cfg:    cfg,
		now:    time.Now,
	}

	defaultUser := cfg.DefaultUser
	if defaultUser == "" {
		defaultUser = "Not set"
	}
	log.Info().
		Int("sheets", len(cfg.SheetIDs)).
		Str("default_user", defaultUser).
		Msg("Starting sales bot")

	b.poll(ctx)
}

// buildAggregator wires the Sheets backend. A missing or unusable service
// account downgrades to an unconfigured aggregator instead of failing
// startup, so the bot still answers commands.
func buildAggregator(ctx context.Context, cfg *config.Config) (*sales.Aggregator, sales.RowSource) {
	creds, ok := config.Credentials()
	if !ok {
		log.Warn().Msg("Service account not configured; sales lookups will be empty")
		return sales.NewUnconfigured("Service account not configured"), nil
	}

	client, err := sheets.NewClient(ctx, creds)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create sheets client")
		return sales.NewUnconfigured(fmt.Sprintf("Authentication error: %v", err)), nil
	}

	source := sheets.NewSource(client, cfg.Resilience.SheetRead)
	return sales.NewAggregator(source, cfg.SheetIDs), source
}

// poll runs the long-poll dispatch loop until ctx ends.
func (b *bot) poll(ctx context.Context) {
	var offset int64
	for {
		updates, err := b.api.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Msg("Failed to fetch updates")
			select {
			case <-ctx.Done():
				return
			case <-time.After(3 * time.Second):
			}
			continue
		}
		for _, upd := range updates {
			offset = upd.UpdateID + 1
			b.handleUpdate(ctx, upd)
		}
	}
}

func (b *bot) handleUpdate(ctx context.Context, upd telegram.Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil {
		return
	}
	cmd, args := msg.Command()
	if cmd == "" {
		return
	}
	log.Info().
		Str("command", cmd).
		Int64("chat", msg.Chat.ID).
		Int64("from", msg.From.ID).
		Msg("Handling command")

	switch cmd {
	case "start":
		b.handleStart(ctx, msg)
	case "mysales", "week":
		b.handleMySales(ctx, msg)
	case "first":
		b.handleWindow(ctx, msg, "first", "the 28th-7th")
	case "second":
		b.handleWindow(ctx, msg, "second", "the 8th-17th")
	case "third":
		b.handleWindow(ctx, msg, "third", "the 18th-27th")
	case "setname":
		b.handleSetName(ctx, msg, args)
	case "debug":
		b.handleDebug(ctx, msg)
	case "testdate":
		b.handleTestDate(ctx, msg, args)
	case "showrow":
		b.handleShowRow(ctx, msg, args)
	default:
		log.Debug().Str("command", cmd).Msg("Ignoring unknown command")
	}
}

// reply sends text to the chat, retrying transient Bot API failures.
func (b *bot) reply(ctx context.Context, chatID int64, text string) {
	_, err := retry.Do(ctx, b.cfg.Resilience.BotAPI, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, b.api.SendMessage(ctx, chatID, text)
	})
	if err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("Failed to send message")
	}
}

func (b *bot) resolveUser(msg *telegram.Message) string {
	return b.users.Resolve(msg.From.ID, msg.From.FullName())
}

func (b *bot) handleStart(ctx context.Context, msg *telegram.Message) {
	b.reply(ctx, msg.Chat.ID, welcomeMessage(b.resolveUser(msg)))
}

func (b *bot) handleMySales(ctx context.Context, msg *telegram.Message) {
	userName := b.resolveUser(msg)
	now := b.now()
	days := window.CurrentDays(now)

	b.reply(ctx, msg.Chat.ID, checkingMessage("sales", userName))

	res := b.agg.Collect(ctx, userName, window.LastDays(days, now))
	descriptor := fmt.Sprintf("the current window (%d days)", days)
	b.reply(ctx, msg.Chat.ID, salesMessage(userName, res, descriptor))
}

func (b *bot) handleWindow(ctx context.Context, msg *telegram.Message, name, label string) {
	userName := b.resolveUser(msg)
	bounds, err := window.Range(name, b.now())
	if err != nil {
		log.Error().Err(err).Str("window", name).Msg("Failed to compute window")
		return
	}
	descriptor := fmt.Sprintf("%s window (%s - %s)",
		label, bounds.Start.Format("2006-01-02"), bounds.End.Format("2006-01-02"))

	b.reply(ctx, msg.Chat.ID, checkingMessage(descriptor, userName))

	res := b.agg.Collect(ctx, userName, bounds)
	b.reply(ctx, msg.Chat.ID, salesMessage(userName, res, descriptor))
}

func (b *bot) handleSetName(ctx context.Context, msg *telegram.Message, args []string) {
	if len(args) == 0 {
		b.reply(ctx, msg.Chat.ID, setNameUsageMessage(b.resolveUser(msg)))
		return
	}

	name := strings.TrimSpace(strings.Join(args, " "))
	if err := b.users.SetName(msg.From.ID, name); err != nil {
		log.Error().Err(err).Int64("user", msg.From.ID).Msg("Failed to save user name")
		b.reply(ctx, msg.Chat.ID, "❌ Failed to save your name. Try again later.")
		return
	}
	b.reply(ctx, msg.Chat.ID, nameSavedMessage(name))
}

func (b *bot) handleTestDate(ctx context.Context, msg *telegram.Message, args []string) {
	if len(args) == 0 {
		b.reply(ctx, msg.Chat.ID, "Usage: /testdate Nov 15, 2025")
		return
	}
	raw := strings.Join(args, " ")
	attempts, cascade, ok := dateparse.Explain(raw)
	b.reply(ctx, msg.Chat.ID, testDateMessage(raw, attempts, cascade, ok))
}

func (b *bot) handleShowRow(ctx context.Context, msg *telegram.Message, args []string) {
	if len(args) < 2 {
		b.reply(ctx, msg.Chat.ID, "Usage: /showrow <sheet_num> <row_num>\nExample: /showrow 2 47")
		return
	}
	sheetNum, err1 := strconv.Atoi(args[0])
	rowNum, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		b.reply(ctx, msg.Chat.ID, "Invalid numbers. Use: /showrow 2 47")
		return
	}
	if sheetNum < 1 || sheetNum > len(b.cfg.SheetIDs) {
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf("Sheet number must be 1-%d", len(b.cfg.SheetIDs)))
		return
	}
	if b.source == nil {
		b.reply(ctx, msg.Chat.ID, "Service account not configured")
		return
	}

	rows, err := b.source.Rows(ctx, b.cfg.SheetIDs[sheetNum-1])
	if err != nil {
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf("Error: %v", err))
		return
	}
	if rowNum < 1 || rowNum > len(rows) {
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf("Row %d not found. Sheet has %d rows.", rowNum, len(rows)))
		return
	}
	b.reply(ctx, msg.Chat.ID, showRowMessage(sheetNum, rowNum, rows[rowNum-1]))
}

// debugSampleRow is the spot-check row /debug dumps from the second sheet,
// the one whose date formats have caused the most parse trouble.
const debugSampleRow = 47

func (b *bot) handleDebug(ctx context.Context, msg *telegram.Message) {
	userName := b.resolveUser(msg)
	// Rendered verbatim below, so pin to UTC up front to match the window math.
	now := b.now().UTC()
	days := window.CurrentDays(now)
	since := window.LastDays(days, now).Start

	b.reply(ctx, msg.Chat.ID, debugMessage(userName, msg.From.ID, now, days, since, b.cfg.SheetIDs))

	if b.source == nil {
		b.reply(ctx, msg.Chat.ID, "\n⚠️ Service account not configured")
		return
	}
	if len(b.cfg.SheetIDs) < 2 {
		return
	}

	sheetID := b.cfg.SheetIDs[1]
	rows, err := b.source.Rows(ctx, sheetID)
	if err != nil {
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf("\n❌ Error: %v", err))
		return
	}
	b.reply(ctx, msg.Chat.ID, sampleRowMessage(2, sheetID, debugSampleRow, rows))
}
