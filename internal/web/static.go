package web

import "net/http"

func serveCSS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(`body{font-family:system-ui,Segoe UI,Roboto,Arial,sans-serif;margin:0;background:#f6f7f9;color:#1f2328}
a{color:#1d4ed8;text-decoration:none} a:hover{text-decoration:underline}
.sidebar{position:fixed;top:0;left:0;bottom:0;width:220px;background:#111827;color:#e5e7eb;padding:16px;display:flex;flex-direction:column}
.sidebar .brand{font-weight:700;margin-bottom:20px} .sidebar nav a{display:block;padding:8px 10px;color:#d1d5db;border-radius:6px}
.sidebar nav a.active,.sidebar nav a:hover{background:#1f2937;color:#fff;text-decoration:none} .sidebar .who{margin-top:auto}
main.with-sidebar{margin-left:252px} .container{max-width:1100px;margin:0 auto;padding:20px}
table{width:100%;border-collapse:collapse;background:#fff;border:1px solid #e5e7eb}
th,td{padding:10px;border-bottom:1px solid #e5e7eb;vertical-align:top} th{text-align:left;background:#f3f4f6}
.btn{display:inline-block;padding:6px 12px;border:1px solid #d1d5db;background:#fff;color:#1f2328;border-radius:6px;cursor:pointer}
.btn-primary{background:#2563eb;border-color:#2563eb;color:#fff} .btn-danger{background:#b91c1c;border-color:#b91c1c;color:#fff}
input,textarea,select{width:100%;padding:8px;border:1px solid #d1d5db;border-radius:6px;box-sizing:border-box}
.grid{display:grid;gap:16px;margin-bottom:16px} .cols-2{grid-template-columns:1fr 1fr} .cols-4{grid-template-columns:repeat(4,1fr)} .span-2{grid-column:span 2}
.card{border:1px solid #e5e7eb;border-radius:10px;padding:16px;background:#fff;margin-bottom:16px} .card.done{opacity:.6}
.stat b{font-size:28px} .filters{display:flex;gap:8px;align-items:end;margin:12px 0} .filters select,.filters input{width:auto}
.inline{display:inline} .small{opacity:.7;font-size:13px} .mono{font-family:ui-monospace,Menlo,Consolas,monospace}
.notice{background:#ecfdf5;border:1px solid #10b981;padding:10px;border-radius:6px;margin-bottom:12px}
.error{background:#fef2f2;border:1px solid #ef4444;padding:10px;border-radius:6px;margin-bottom:12px}
.badge{display:inline-block;padding:2px 8px;border-radius:999px;font-size:12px;background:#e5e7eb}
.badge.overdue,.badge.critical{background:#fee2e2;color:#991b1b} .badge.soon,.badge.high{background:#fef3c7;color:#92400e}
.badge.paid,.badge.resolved{background:#d1fae5;color:#065f46} .badge.in_progress{background:#dbeafe;color:#1e40af}
.auth{max-width:420px;margin:60px auto} .tabs{display:flex;gap:12px;margin-bottom:12px} .tabs a.active{font-weight:700}
.month-nav{display:flex;gap:12px;align-items:center}
.calendar{display:grid;grid-template-columns:repeat(7,1fr);gap:4px;margin-bottom:16px}
.calendar .wd{font-weight:600;text-align:center} .cell{min-height:90px;background:#fff;border:1px solid #e5e7eb;border-radius:6px;padding:4px}
.cell.blank{background:transparent;border:none} .cell.today{border-color:#2563eb} .cell .num{font-size:12px;opacity:.7}
.ev{font-size:12px;padding:2px 4px;border-radius:4px;margin-top:2px;background:#dbeafe} .ev.invoice{background:#fef3c7} .ev.deadline{background:#fee2e2}`))
}

func serveJS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(`document.addEventListener('submit',function(e){var m=e.target.getAttribute('data-confirm');if(m&&!confirm(m))e.preventDefault()});
`))
}
