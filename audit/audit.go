// Package audit implements the multi-turn audit-trail fetcher dialog:
// seed with "WF", paginate with "WN", terminate on the "WE" error
// sentinel or the "WO" end-of-trail sentinel, over one held
// connection.
package audit

import (
	"context"

	"github.com/saltodrv/saltopms/transport"
	"github.com/saltodrv/saltopms/wire"
)

// Fetch retrieves the full audit trail for door, using one TCP
// connection for the entire dialog. The returned slice always
// includes the terminating error or end-of-trail record.
func Fetch(ctx context.Context, client *transport.Client, door string) ([]Record, error) {
	session, err := client.OpenSession(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	var records []Record
	next := wire.FromFields(wire.EncodeStr("WF"), wire.EncodeStr(door))

	for {
		res, err := session.Send(ctx, next)
		if err != nil {
			return records, err
		}

		record := Record{Message: res.Message, dateOrder: client.DateOrder}
		records = append(records, record)

		if record.IsError() || record.IsEndOfTrail() {
			return records, nil
		}

		next = wire.FromFields(wire.EncodeStr("WN"), wire.EncodeStr(door))
	}
}
