// Package access derives a caller's effective permissions on a project and
// decides whether they may perform a capability.
//
// Permissions come from three sources, evaluated in this order:
//
//   - ownership: the project owner may do everything
//   - the coarse membership role: admins may do everything except
//     owner-only operations; viewers may not edit content
//   - an optional ProjectRole bound to the membership, whose boolean flags
//     grant the fine-grained capabilities to non-admin members
//
// Permissions are loaded fresh for every request and never cached, so a
// revoked flag takes effect on the next request.
package access
