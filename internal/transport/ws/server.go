// Package ws exposes the scan scoring service over a websocket: the client
// sends SCAN messages and receives RESULT or ERROR replies in order.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"boardlens.ai/internal/scan"
)

type Server struct {
	svc *scan.Service
	log *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(svc *scan.Service, logger *log.Logger) *Server {
	return &Server{
		svc: svc,
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		out := make(chan []byte, 8)

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				return
			}

			res, errMsg := s.svc.ScanRaw(msg)
			var reply []byte
			if errMsg != nil {
				reply, _ = json.Marshal(errMsg)
			} else {
				reply, _ = json.Marshal(res)
			}
			select {
			case out <- reply:
			case <-ctx.Done():
				return
			}
		}
	}
}
