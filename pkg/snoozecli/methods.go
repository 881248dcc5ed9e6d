package snoozecli

import (
	"encoding/json"

	"github.com/niteowll/SnoozeTabs/common"
)

func invoke[T any](c *Client, op common.OpType, message any) (*T, error) {
	resp, err := c.invoke(op, message)
	if err != nil {
		return nil, err
	}
	var d T
	return &d, json.Unmarshal(resp, &d)
}

// Schedule asks the daemon to snooze a tab, going through the same
// confirmation path the extension uses.
func (c *Client) Schedule(params *common.SnoozeParams) error {
	_, err := c.invoke(common.OP_SCHEDULE, params)
	return err
}

// Confirm persists a snooze record directly, bypassing the confirmation
// bar. It returns the key the record was stored under.
func (c *Client) Confirm(params *common.SnoozeParams) (*common.ConfirmResponse, error) {
	return invoke[common.ConfirmResponse](c, common.OP_CONFIRM, params)
}

// Cancel removes a pending snooze identified by its content fields.
func (c *Client) Cancel(params *common.SnoozeParams) error {
	_, err := c.invoke(common.OP_CANCEL, params)
	return err
}

// Update atomically replaces one pending snooze with another.
func (c *Client) Update(old, updated *common.SnoozeParams) (*common.ConfirmResponse, error) {
	return invoke[common.ConfirmResponse](c, common.OP_UPDATE, &common.UpdateParams{
		Old:     *old,
		Updated: *updated,
	})
}

// SetConfirm toggles the persisted dont-show-confirmation preference.
func (c *Client) SetConfirm(dontShow bool) error {
	_, err := c.invoke(common.OP_SETCONFIRM, &common.SetConfirmParams{DontShow: dontShow})
	return err
}

// List returns pending snoozes, earliest wake time first.
func (c *Client) List() (*common.ListResponse, error) {
	return invoke[common.ListResponse](c, common.OP_LIST, nil)
}

// Wake runs a wake batch immediately, opening every due tab without
// waiting for the daemon's timer.
func (c *Client) Wake() error {
	_, err := c.invoke(common.OP_WAKE, nil)
	return err
}

// Watch subscribes this connection to wake updates. Register handlers on
// the returned dispatcher, then call Listen to stream them.
func (c *Client) Watch(h Handler) error {
	if c.d.Handlers == nil {
		c.d.Handlers = make(map[common.OpType]Handler)
	}
	c.d.Handlers[common.OP_WATCH] = h
	_, err := c.invoke(common.OP_WATCH, nil)
	return err
}
