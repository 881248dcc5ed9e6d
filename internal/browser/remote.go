package browser

import (
	"context"
	"log"

	"github.com/creachadair/jrpc2"

	"github.com/niteowll/SnoozeTabs/pkg/snoozelib"
)

// Remote relays host calls to a connected extension client over its jrpc2
// session. The extension registers when its WebSocket connects and exposes
// tabs.*, windows.* and notifications.* callback methods.
type Remote struct {
	log      *log.Logger
	sessions *snoozelib.VMap[*jrpc2.Server, struct{}]
}

// NewRemote creates an empty Remote host.
func NewRemote(l *log.Logger) *Remote {
	return &Remote{
		log:      l,
		sessions: snoozelib.NewVMap[*jrpc2.Server, struct{}](),
	}
}

// Register adds a connected extension session.
func (r *Remote) Register(srv *jrpc2.Server) {
	r.sessions.Set(srv, struct{}{})
}

// Unregister removes a disconnected session.
func (r *Remote) Unregister(srv *jrpc2.Server) {
	r.sessions.Delete(srv)
}

// Connected reports the number of registered extension sessions.
func (r *Remote) Connected() int {
	return r.sessions.Len()
}

// pick returns an arbitrary connected session. In practice there is one:
// the browser this daemon serves.
func (r *Remote) pick() (*jrpc2.Server, bool) {
	var srv *jrpc2.Server
	r.sessions.Range(func(s *jrpc2.Server, _ struct{}) bool {
		srv = s
		return false
	})
	return srv, srv != nil
}

// call performs a server-to-client callback, decoding the result into out
// when out is non-nil.
func (r *Remote) call(ctx context.Context, method string, params, out any) error {
	srv, ok := r.pick()
	if !ok {
		return ErrNoClient
	}
	rsp, err := srv.Callback(ctx, method, params)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return rsp.UnmarshalResult(out)
}

type openParams struct {
	Url      string `json:"url"`
	WindowId int64  `json:"windowId,omitempty"`
	Active   bool   `json:"active"`
}

type openResult struct {
	TabId int64 `json:"tabId"`
}

func (r *Remote) Open(ctx context.Context, url string, windowId int64, active bool) (int64, error) {
	var res openResult
	err := r.call(ctx, "tabs.open", &openParams{Url: url, WindowId: windowId, Active: active}, &res)
	if err != nil {
		return 0, err
	}
	return res.TabId, nil
}

type tabParam struct {
	TabId int64 `json:"tabId"`
}

func (r *Remote) Close(ctx context.Context, tabId int64) error {
	return r.call(ctx, "tabs.close", &tabParam{TabId: tabId}, nil)
}

type countResult struct {
	Count int `json:"count"`
}

func (r *Remote) Count(ctx context.Context) (int, error) {
	var res countResult
	if err := r.call(ctx, "tabs.count", nil, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

func (r *Remote) Activate(ctx context.Context, tabId int64) error {
	return r.call(ctx, "tabs.activate", &tabParam{TabId: tabId}, nil)
}

type injectParams struct {
	TabId  int64  `json:"tabId"`
	Script string `json:"script"`
}

func (r *Remote) Inject(ctx context.Context, tabId int64, script string) error {
	return r.call(ctx, "tabs.inject", &injectParams{TabId: tabId, Script: script}, nil)
}

type windowsResult struct {
	Windows []int64 `json:"windows"`
}

func (r *Remote) List(ctx context.Context) ([]int64, error) {
	var res windowsResult
	if err := r.call(ctx, "windows.list", nil, &res); err != nil {
		return nil, err
	}
	return res.Windows, nil
}

type focusParams struct {
	WindowId int64 `json:"windowId"`
}

func (r *Remote) Focus(ctx context.Context, windowId int64) error {
	return r.call(ctx, "windows.focus", &focusParams{WindowId: windowId}, nil)
}

type notifyParams struct {
	Id      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (r *Remote) Create(ctx context.Context, id, title, message string) error {
	return r.call(ctx, "notifications.create", &notifyParams{Id: id, Title: title, Message: message}, nil)
}

var _ Host = (*Remote)(nil)
