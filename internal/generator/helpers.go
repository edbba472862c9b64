package generator

// ensureEnum registers an enum declaration under name unless one exists.
// variants is only called for a new name, so nested synthesis it triggers
// is registered ahead of this enum.
func (g *generator) ensureEnum(name string, variants func() []variantModel) string {
	if g.state.hasEnum(name) {
		return name
	}
	var vs []variantModel
	if variants != nil {
		vs = variants()
	}
	// variants may have registered the same name through a recursive shape
	if g.state.hasEnum(name) {
		return name
	}
	g.state.addEnum(name, g.render(tmplEnum, enumModel{Name: name, Variants: vs}))
	g.log.Debugw("synthesized enum", "name", name, "variants", len(vs))
	return name
}

// ensureAlias registers a function type alias unless one exists.
func (g *generator) ensureAlias(name, target string) string {
	if g.state.hasAlias(name) {
		return name
	}
	g.state.addAlias(name, g.render(tmplFnAlias, aliasModel{Name: name, Target: target}))
	g.log.Debugw("synthesized alias", "name", name)
	return name
}
