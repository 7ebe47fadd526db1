package interp

// state is the tokenizer's current parsing mode. The contract that matters
// is the set of transitions in tokenizePass below, not this representation: a tagged-variant
// encoding (one struct per state) would describe the same machine, but a
// byte-cursor loop over an enum reads closer to how the rest of this module
// scans input.
type state int

const (
	statePlain state = iota
	stateSawDollar
	stateSawDoubleDollar
	stateInSub
	stateInSubSawDollar
)

// tokenizePass runs one full single pass of substitution over input: every
// top-level `${...}` region is replaced by its handler's output, with all
// other bytes, including malformed or unterminated constructs, preserved
// verbatim. limit is the recursion budget available to any `${...}` region
// that closes during this pass; findings accumulates across the whole call,
// including from nested driver invocations triggered by dispatch.
func tokenizePass(input []byte, limit uint64, findings *Findings) []byte {
	out := make([]byte, 0, len(input))
	st := statePlain

	var sub []byte
	depth := 0

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch st {
		case statePlain:
			switch c {
			case '$':
				st = stateSawDollar
			default:
				out = append(out, c)
			}

		case stateSawDollar:
			switch c {
			case '$':
				out = append(out, '$')
				st = stateSawDoubleDollar
			case '{':
				sub = nil
				depth = 0
				st = stateInSub
			default:
				out = append(out, '$', c)
				st = statePlain
			}

		case stateSawDoubleDollar:
			if c == '{' {
				// $${ collapses to a literal ${, the escape of the start sequence.
				out = append(out, '{')
			} else {
				out = append(out, '$', c)
			}
			st = statePlain

		case stateInSub:
			switch c {
			case '$':
				// The `$` is folded into the inner buffer right away, so
				// every SawDollar transition below sees it already present.
				sub = append(sub, '$')
				st = stateInSubSawDollar
			case '}':
				if depth == 0 {
					out = append(out, dispatchRegion(sub, limit, findings)...)
					st = statePlain
				} else {
					sub = append(sub, '}')
					depth--
				}
			default:
				sub = append(sub, c)
			}

		case stateInSubSawDollar:
			switch c {
			case '{':
				// Nested `${`: depth increases; the matching `}` pops it
				// back out. sub already holds the `$` from entry.
				sub = append(sub, '{')
				depth++
				st = stateInSub
			case '}':
				if depth == 0 {
					// A `$` immediately followed by `}` at depth 0 (e.g.
					// `${::-$}`) passes the literal `$`, already in sub,
					// through to the handler as part of the inner buffer.
					out = append(out, dispatchRegion(sub, limit, findings)...)
					st = statePlain
				} else {
					sub = append(sub, '}')
					depth--
					st = stateInSub
				}
			default:
				sub = append(sub, c)
				st = stateInSub
			}
		}
	}

	// EOF handling: no more bytes, but the state we stopped in decides what,
	// if anything, gets appended for whatever was pending.
	switch st {
	case statePlain:
		// nothing pending
	case stateSawDollar, stateSawDoubleDollar:
		out = append(out, '$')
	case stateInSub, stateInSubSawDollar:
		// Unterminated `${`: pass the literal open sequence and whatever was
		// collected through verbatim, no dispatch. (sub already carries any
		// trailing `$` seen while in stateInSubSawDollar.)
		out = append(out, '$', '{')
		out = append(out, sub...)
	}

	return out
}

// dispatchRegion is invoked when a top-level `${...}` region closes. It
// either forces the region to the recursion-limit sentinel, or recursively
// drives the inner bytes to a fixed point and hands the result to the
// handler dispatch table.
func dispatchRegion(sub []byte, limit uint64, findings *Findings) []byte {
	if limit == 0 {
		findings.HitRecursionLimit = true
		logger.WithField("handler", "recursion_limit").Warn("log4scan: recursion budget exhausted")
		return []byte(errRecursionLimitReached)
	}

	expanded, nested := Parse(sub, limit-1)
	findings.Merge(nested)

	output, tag, ok := dispatch(expanded)
	if ok {
		findings.record(tag)
		switch tag {
		case TagJndi:
			findings.SawJndi = true
			logger.WithField("handler", tag.String()).Warn("log4scan: jndi lookup observed")
		case TagEnv:
			findings.SawEnv = true
			logger.WithField("handler", tag.String()).Warn("log4scan: env lookup observed")
		case TagMain:
			findings.SawMain = true
			logger.WithField("handler", tag.String()).Warn("log4scan: main lookup observed")
		}
	}
	return output
}
