// Package luahost runs project-relative plugins written in Lua.
//
// A script defines a global function run(schema, config, ctx). schema mirrors
// the resolved schema document; config is the plugin entry with output
// first; ctx exposes cwd, schema_dir, resolve(path), write(path, content)
// and log(message). Lua tables have no order, so idea.keys(tbl) returns the
// keys of any table built from the schema in declared order.
package luahost
