// Package backend wraps each REST endpoint the dashboard consumes in a typed call.
// Every call goes through a gateway.Client, so credentials and 401 handling are
// applied uniformly.
package backend

import (
	"net/url"
)

func escape(id string) string {
	return url.PathEscape(id)
}
