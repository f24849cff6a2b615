package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"chat-client/domain/event"
	"chat-client/observability"
	"chat-client/services"
	"chat-client/session"
	"chat-client/store"
)

// commandLoop interprets slash commands; any other input goes to the current
// conversation as a message.
type commandLoop struct {
	session   *session.Session
	store     *store.Store
	telemetry *observability.Telemetry
	chat      *services.ChatService
	contacts  *services.ContactService
	translate *services.TranslateService
	account   *services.AccountService
	settings  *services.SettingsService
	uploads   *services.UploadService
}

func (c *commandLoop) Handle(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, "/") {
		c.send(line)
		return false
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "/login":
		if len(fields) != 3 {
			color.Info.Println("Usage: /login <email> <password>")
			return false
		}
		if !c.session.Login(fields[1], fields[2]) {
			color.Error.Println("Sign in failed")
			return false
		}
		if user, ok := c.store.CurrentUser(); ok {
			color.Success.Printf("Signed in as %s\n", user.Name)
		}
		c.chat.FetchMessages()
		c.contacts.List()

	case "/logout":
		c.account.Logout()
		c.session.Logout()
		color.Info.Println("Signed out")

	case "/contacts":
		if _, ok := c.contacts.List(); !ok {
			return false
		}
		c.renderContacts()

	case "/online":
		c.renderOnline()

	case "/add", "/remove", "/block", "/unblock":
		if len(fields) != 2 {
			color.Info.Printf("Usage: %s <contact-id>\n", fields[0])
			return false
		}
		c.mutateContact(fields[0], fields[1])

	case "/delete":
		if len(fields) != 2 {
			color.Info.Println("Usage: /delete <message-id>")
			return false
		}
		if c.chat.DeleteMessage(fields[1]) {
			color.Info.Println("Message deleted")
		}

	case "/chat":
		if len(fields) != 2 {
			color.Info.Println("Usage: /chat <contact-id>")
			return false
		}
		c.chat.UpdateCurrentWindow(fields[1])
		c.renderConversation(fields[1])

	case "/read":
		if len(fields) != 2 {
			color.Info.Println("Usage: /read <message-id>")
			return false
		}
		c.chat.MarkRead(fields[1])

	case "/translate":
		if len(fields) < 3 {
			color.Info.Println("Usage: /translate <target-lang> <text>")
			return false
		}
		text := strings.Join(fields[2:], " ")
		if translation, ok := c.translate.Translate(text, fields[1]); ok {
			color.Success.Println(translation)
		}

	case "/langs":
		if languages, ok := c.translate.SupportedLanguages(); ok {
			color.Info.Println(strings.Join(languages, ", "))
		}

	case "/history":
		if records, ok := c.translate.History(); ok {
			for _, record := range records {
				fmt.Printf("%s -> %s (%s>%s)\n", record.Source, record.Translation, record.From, record.To)
			}
		}

	case "/register":
		if len(fields) != 4 {
			color.Info.Println("Usage: /register <name> <email> <password>")
			return false
		}
		if c.account.Register(fields[1], fields[2], fields[3]) {
			color.Success.Println("Account created, sign in with /login")
		}

	case "/profile":
		if user, ok := c.account.Profile(); ok {
			color.Info.Printf("%s <%s> (id %s)\n", user.Name, user.Email, user.ID)
		}

	case "/lang":
		if len(fields) != 2 {
			color.Info.Println("Usage: /lang <code>")
			return false
		}
		current, ok := c.settings.Get()
		if !ok {
			return false
		}
		current.Language = fields[1]
		if c.settings.Update(current) {
			color.Success.Printf("Language set to %s\n", fields[1])
		}

	case "/upload", "/avatar":
		if len(fields) != 2 {
			color.Info.Printf("Usage: %s <path>\n", fields[0])
			return false
		}
		c.sendFile(fields[0] == "/avatar", fields[1])

	case "/reconnect":
		c.session.Realtime.Reconnect()

	case "/stats":
		c.renderStats()

	case "/quit":
		return true

	default:
		color.Info.Printf("Unknown command %s\n", fields[0])
	}
	return false
}

func (c *commandLoop) send(content string) {
	contactID := c.store.CurrentChat()
	if contactID == "" {
		color.Info.Println("Pick a conversation first with /chat <contact-id>")
		return
	}
	if message, ok := c.chat.SendMessage(contactID, content); ok {
		c.telemetry.IncrMessageSent()
		color.New(color.FgCyan).Printf("me > %s (%s)\n", message.Content, message.CreatedAt.Format("15:04:05"))
	}
}

func (c *commandLoop) mutateContact(command, contactID string) {
	var ok bool
	switch command {
	case "/add":
		ok = c.contacts.Add(contactID)
	case "/remove":
		ok = c.contacts.Remove(contactID)
	case "/block":
		ok = c.contacts.Block(contactID)
	case "/unblock":
		ok = c.contacts.Unblock(contactID)
	}
	if ok {
		c.contacts.List()
	}
}

func (c *commandLoop) sendFile(avatar bool, path string) {
	file, err := os.Open(path)
	if err != nil {
		color.Error.Printf("Cannot read %s: %v\n", path, err)
		return
	}
	defer file.Close()

	upload := c.uploads.File
	if avatar {
		upload = c.uploads.Avatar
	}
	if url, ok := upload(filepath.Base(path), file); ok {
		color.Success.Printf("Uploaded: %s\n", url)
	}
}

func (c *commandLoop) renderStats() {
	snapshot := c.telemetry.Latest()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetBorder(false)
	table.Append([]string{"uptime", snapshot.Uptime.String()})
	table.Append([]string{"messages sent", fmt.Sprintf("%d", snapshot.MessagesSent)})
	table.Append([]string{"messages received", fmt.Sprintf("%d", snapshot.MessagesReceived)})
	table.Append([]string{"read receipts", fmt.Sprintf("%d", snapshot.ReadReceipts)})
	table.Append([]string{"presence events", fmt.Sprintf("%d", snapshot.PresenceEvents)})
	table.Append([]string{"connection errors", fmt.Sprintf("%d", snapshot.ConnectionErrors)})
	table.Append([]string{"connection state", c.session.Realtime.State().String()})
	table.Append([]string{"alloc mem (MB)", fmt.Sprintf("%d", snapshot.AllocMemMb)})
	table.Append([]string{"gc cycles", fmt.Sprintf("%d", snapshot.NumGC)})
	table.Render()
}

func (c *commandLoop) renderContacts() {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Email"})
	table.SetBorder(false)
	for _, contact := range c.store.Contacts() {
		table.Append([]string{contact.ID, contact.Name, contact.Email})
	}
	table.Render()
}

func (c *commandLoop) renderOnline() {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name"})
	table.SetBorder(false)
	for _, user := range c.store.OnlineUsers() {
		table.Append([]string{user.ID, user.Name})
	}
	table.Render()
	color.Info.Printf("%d unread message(s)\n", c.store.UnreadCount())
}

func (c *commandLoop) renderConversation(contactID string) {
	for _, message := range c.store.MessagesForContact(contactID) {
		prefix := message.SenderID
		if message.IsMine {
			prefix = "me"
		}
		fmt.Printf("%s > %s (%s)\n", prefix, message.Content, message.CreatedAt.Format("15:04:05"))
	}
}

// incomingRenderer prints delivered messages as they arrive; state updates
// already happened in the core handler chain.
type incomingRenderer struct{}

func (incomingRenderer) Handle(evt event.Event) error {
	payload, ok := evt.Payload.(event.MessageSent)
	if !ok {
		return nil
	}
	color.New(color.FgGreen).Printf("%s > %s\n", payload.Sender.Name, payload.Message.Content)
	return nil
}
