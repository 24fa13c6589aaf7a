package router

import (
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const upstreamDialTimeout = 5 * time.Second

// upstream. hands /ws upgrades to the netpoll websocket listener at addr.
func (api *API) upstream(name, network, addr string) http.HandlerFunc {
	dialer := net.Dialer{Timeout: upstreamDialTimeout}

	return func(w http.ResponseWriter, r *http.Request) {
		log := api.log.With(zap.String("upstream", name), zap.String("request_id", RequestID(r.Context())))

		peer, err := dialer.DialContext(r.Context(), network, addr)
		if err != nil {
			log.Error("dial upstream", zap.Error(err))
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		// replay the upgrade request, the listener does its own handshake
		if err := r.Write(peer); err != nil {
			peer.Close()
			log.Error("replay request to upstream", zap.Error(err))
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		hj, ok := w.(http.Hijacker)
		if !ok {
			peer.Close()
			log.Error("response writer cannot hijack")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			peer.Close()
			log.Error("hijack", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		go splice(peer, conn)
		go splice(conn, peer)
	}
}

// splice. copy src into dst, closing both when either side is done.
func splice(dst, src net.Conn) {
	defer dst.Close()
	defer src.Close()
	io.Copy(dst, src)
}
