package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two consecutive guards with the same return read better merged.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)
}

func database(m dsl.Matcher) {
	// Every statement in this codebase runs under the caller's context.
	m.Match(`$db.Exec($*args)`, `$db.Query($*args)`, `$db.QueryRow($*args)`).
		Where(m["db"].Type.Is(`*database/sql.DB`) || m["db"].Type.Is(`*database/sql.Tx`)).
		Report(`use the Context variant so cancellation reaches the database`)
}

func errorWrapping(m dsl.Matcher) {
	m.Match(`fmt.Errorf($fmt, $err)`).
		Where(m["err"].Type.Is(`error`) && !m["fmt"].Text.Matches(`%w`)).
		Report(`wrap with %w so callers can unwrap with errors.Is and errors.As`)
}
