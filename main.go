package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"github.com/gorilla/websocket"

	"PixelBoard/internal/engine"
	pbnet "PixelBoard/internal/net"
	"PixelBoard/internal/state"
	"PixelBoard/internal/ui"
)

const (
	CustomURLScheme = "pixelboard://"
	Port            = 8899
)

var canvasBackground = engine.Color{R: 255, G: 255, B: 255}

func main() {
	args := os.Args
	switch {
	case len(args) > 1 && strings.HasPrefix(args[1], CustomURLScheme):
		runClient(args[1])
	case len(args) > 1 && args[1] == "-discover":
		runDiscover()
	default:
		runHost()
	}
}

func newSession() *engine.Session {
	session, err := engine.NewSession(engine.DefaultWidth, engine.DefaultHeight, canvasBackground)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	return session
}

// wireOutgoing broadcasts every local commit as a stamped operation.
func wireOutgoing(session *engine.Session, oplog *state.OpLog, send func([]byte)) {
	session.OnEdit = func(e engine.Edit) {
		op := oplog.NewEdit(e)
		data, err := json.Marshal(op)
		if err != nil {
			log.Printf("Failed to marshal edit op: %v", err)
			return
		}
		send(data)
	}
	session.OnSync = func(snap engine.Snapshot) {
		op := oplog.NewSync(snap)
		data, err := json.Marshal(op)
		if err != nil {
			log.Printf("Failed to marshal sync op: %v", err)
			return
		}
		send(data)
	}
}

// applyRemote decodes, deduplicates and applies one incoming operation.
// It returns false for duplicates and malformed data, which must not relay.
func applyRemote(data []byte, session *engine.Session, oplog *state.OpLog, appUI *ui.App) bool {
	var op state.Op
	if err := json.Unmarshal(data, &op); err != nil {
		log.Printf("Dropping malformed op: %v", err)
		return false
	}
	if !oplog.Record(op) {
		return false
	}
	state.LogOp("apply", op)

	// The session is owned by the UI event loop; remote ops hop onto it.
	fyne.Do(func() {
		if err := op.Apply(session); err != nil {
			log.Printf("Failed to apply op %s: %v", op.ID, err)
		}
	})
	appUI.RefreshBoard()
	return true
}

func runHost() {
	log.Println("Starting as HOST")
	session := newSession()
	oplog := state.NewOpLog()
	hub := pbnet.NewHub()
	appUI := ui.NewApp(session)

	wireOutgoing(session, oplog, func(data []byte) { hub.Broadcast(data, nil) })

	// Relay edits from one connected editor to all others.
	hub.OnMessage = func(data []byte, from *websocket.Conn) {
		if applyRemote(data, session, oplog, appUI) {
			hub.Broadcast(data, from)
		}
	}

	go func() {
		if err := hub.ListenAndServe(Port); err != nil {
			log.Printf("Host server stopped: %v", err)
			appUI.SetStatus("Live share unavailable: " + err.Error())
		}
	}()

	if server, err := pbnet.Advertise(Port); err != nil {
		log.Printf("mDNS advertise failed: %v", err)
	} else {
		defer server.Shutdown()
	}

	appUI.Run(shareLink())
}

func shareLink() string {
	ip, err := pbnet.OutgoingIP()
	if err != nil {
		log.Printf("Could not determine local IP: %v", err)
		ip = "127.0.0.1"
	}
	link := fmt.Sprintf("%s%s:%d", CustomURLScheme, ip, Port)
	log.Printf("Share link: %s", link)
	return link
}

func runClient(link string) {
	log.Println("Starting as CLIENT")
	address := strings.TrimPrefix(link, CustomURLScheme)
	address = strings.TrimSuffix(address, "/")
	runClientAddr(address)
}

func runClientAddr(address string) {
	session := newSession()
	oplog := state.NewOpLog()
	appUI := ui.NewApp(session)

	go connectToHost(address, session, oplog, appUI)
	appUI.Run("")
}

func connectToHost(address string, session *engine.Session, oplog *state.OpLog, appUI *ui.App) {
	time.Sleep(500 * time.Millisecond) // give the UI time to launch

	client, err := pbnet.Dial(address)
	if err != nil {
		appUI.SetStatus("Connection failed: " + err.Error())
		return
	}
	defer client.Close()
	appUI.SetStatus("Connected to " + address)

	wireOutgoing(session, oplog, func(data []byte) {
		if err := client.Send(data); err != nil {
			log.Printf("Failed to send op: %v", err)
		}
	})

	err = client.Listen(func(data []byte) {
		applyRemote(data, session, oplog, appUI)
	})
	appUI.SetStatus("Disconnected from host: " + err.Error())
}

// runDiscover browses the LAN for a shared session and joins the first one.
func runDiscover() {
	log.Println("Browsing for sessions...")
	found := make(chan string, 8)
	if err := pbnet.Browse(func(addr string) { found <- addr }); err != nil {
		log.Fatalf("Discovery failed: %v", err)
	}

	select {
	case addr := <-found:
		log.Printf("Found session at %s", addr)
		runClientAddr(addr)
	case <-time.After(3 * time.Second):
		log.Fatal("No shared sessions found on this network")
	}
}
