package loopexec

import (
	"github.com/casualjim/loopexec/task"
)

// Task is the root task driven by an Executor.
type Task = task.Task
