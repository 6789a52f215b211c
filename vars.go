package hashchain

import (
	"github.com/eon-protocol/hashchain/ivc"
)

// DEFAULT_CAPACITY is the largest step_num + 1 the default parameters accept.
const DEFAULT_CAPACITY = 32

const COMPANION_ARITY = 1

var FIELD = ivc.FIELD
