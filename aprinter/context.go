package aprinter

import ce "github.com/reoring/configema"

// BoardRefContext maps a path into the board data to a reference target.
// The same peripheral choice is rooted differently depending on whether it
// is declared inside a configuration or inside a board.
type BoardRefContext interface {
	BoardRef(what []string) ce.RefPath
}

// ConfigurationContext reaches the board through the configuration's
// dereferenced board_data.
type ConfigurationContext struct{}

func (ConfigurationContext) BoardRef(what []string) ce.RefPath {
	return ce.RefPath{Base: "id_configuration.board_data", Descend: what}
}

// BoardContext reaches fields of the enclosing board directly. The first
// element of what is folded into the base.
type BoardContext struct{}

func (BoardContext) BoardRef(what []string) ce.RefPath {
	if len(what) == 0 {
		return ce.RefPath{Base: "id_board"}
	}
	return ce.RefPath{Base: "id_board." + what[0], Descend: what[1:]}
}
