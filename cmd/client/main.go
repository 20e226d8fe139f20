package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.Error.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr, room, name string

	cmd := &cobra.Command{
		Use:           "roomrelay-client",
		Short:         "Chat in a roomrelay room from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, addr, room, name, os.Stdin, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", "ws://localhost:3000", "server base address")
	flags.StringVar(&room, "room", "lobby", "room to join")
	flags.StringVar(&name, "name", "cli-user", "display name")

	cmd.SetContext(context.Background())
	return cmd
}

func run(ctx context.Context, addr, room, name string, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, strings.TrimRight(addr, "/")+"/chat/"+url.PathEscape(room), nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	if err := write(ctx, conn, proto.Join{Name: name}); err != nil {
		return err
	}

	fmt.Fprintf(out, "Connected to %s as %s.\n", room, name)
	fmt.Fprintln(out, "Commands: /joke, /members, /msg <user> <text>. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn, out)
	}()

	return writeLoop(ctx, conn, in)
}

func write(ctx context.Context, conn *websocket.Conn, msg proto.Inbound) error {
	raw, err := proto.EncodeInbound(msg)
	if err != nil {
		return err
	}
	if err := conn.Write(ctx, websocket.MessageText, raw); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn, out io.Writer) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			color.Error.Printf("read error: %v\n", err)
			return
		}

		msg, err := proto.DecodeOutbound(data)
		if err != nil {
			color.Warn.Printf("unreadable frame: %v\n", err)
			continue
		}
		fmt.Fprintln(out, render(msg))
	}
}

func render(msg proto.Outbound) string {
	switch m := msg.(type) {
	case proto.NoteMessage:
		return color.Gray.Sprintf("* %s", m.Text)
	case proto.ChatMessage:
		if m.Name == proto.ServerName {
			return color.Yellow.Sprintf("%s: %s", m.Name, m.Text)
		}
		return color.Cyan.Sprint(m.Name) + ": " + m.Text
	default:
		return fmt.Sprintf("%v", msg)
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			msg, err := parseLine(line)
			if err != nil {
				color.Warn.Println(err)
				continue
			}
			if msg == nil {
				continue
			}
			if err := write(ctx, conn, msg); err != nil {
				return err
			}
		}
	}
}

// parseLine turns one line of input into a client message. Blank lines yield nil.
func parseLine(line string) (proto.Inbound, error) {
	text := strings.TrimSpace(line)
	switch {
	case text == "":
		return nil, nil
	case text == "/joke":
		return proto.GetJoke{}, nil
	case text == "/members":
		return proto.GetMembers{}, nil
	case text == "/msg" || strings.HasPrefix(text, "/msg "):
		user, body, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(text, "/msg ")), " ")
		body = strings.TrimSpace(body)
		if !ok || user == "" || body == "" {
			return nil, errors.New("usage: /msg <user> <text>")
		}
		return proto.Private{Text: body, Username: user}, nil
	default:
		return proto.Chat{Text: text}, nil
	}
}
