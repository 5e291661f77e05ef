package fp_api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rskv-p/fpmine/codec"
	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_fptree"
	"github.com/rskv-p/fpmine/pkg/x_log"
	"github.com/rskv-p/fpmine/servs/s_fp/fp_serv"
)

const writeWait = 10 * time.Second

// WebSocket upgrader to handle HTTP -> WebSocket connection
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsSink streams each itemset as one JSON text frame.
type wsSink struct {
	conn  *websocket.Conn
	runID string
	seq   uint64
}

var _ x_fptree.Sink = (*wsSink)(nil)

func (s *wsSink) Emit(set x_fptree.Itemset) error {
	s.seq++
	return s.send(codec.NewItemset(s.runID, s.seq, set))
}

func (s *wsSink) send(m *codec.ItemsetMessage) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(m)
}

// handleWS reads one MineRequest from the client, streams the itemsets and
// closes with a done or error message.
func handleWS(svc *fp_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied to the client
			x_log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		if user, _, ok := UserFromContext(r.Context()); ok {
			x_log.Debug().Str("user", user).Msg("websocket mining session")
		}

		var req codec.MineRequest
		_, data, err := conn.ReadMessage()
		if err == nil {
			err = codec.Unmarshal(data, &req)
		}
		if err != nil {
			_ = conn.WriteJSON(codec.NewError("", fmt.Errorf("%w: %v", constant.ErrBadRequest, err)))
			return
		}

		sink := &wsSink{conn: conn, runID: fp_serv.NewRunID()}
		if err := req.Validate(); err != nil {
			_ = sink.send(codec.NewError(sink.runID, err))
			return
		}

		job := jobFromRequest(req, false)
		job.RunID = sink.runID
		job.Sink = sink

		sum, err := svc.Run(r.Context(), job)
		if err != nil {
			_ = sink.send(codec.NewError(sink.runID, err))
			return
		}
		_ = sink.send(codec.NewDone(sink.runID, sum.Result.Itemsets))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, constant.MessageTypeDone),
			time.Now().Add(writeWait))
	}
}
