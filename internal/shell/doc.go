// Package shell is the executor side of the engine contract: it renders a
// mutation plan into bash commands for the calling shell to eval, and
// provides the rc-file integration snippet (wrapper functions piping the
// current alias list on stdin, plus tab completion).
package shell
