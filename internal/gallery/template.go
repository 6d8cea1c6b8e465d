package gallery

// pageTemplate is the full, self-contained gallery document. It has
// three insertion points, each a plain string-replace target:
// __PHOTOS_JSON__ (the photo array literal), __GRID_HTML__ (the
// per-year thumbnail grids), and __TAGS_FILTER_HTML__ (the tag filter
// bar). Everything else — layout, lightbox, star rating, tag editing,
// slideshow, save/export — is fixed, ported from the reference gallery
// this one replaces.
const pageTemplate = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Photo Gallery</title>
<style>
body{margin:0;font-family:sans-serif;background:#111;color:#eee}
header{display:flex;gap:.5rem;padding:.5rem 1rem;position:sticky;top:0;background:#000;z-index:10;align-items:center}
header button{background:#222;color:#eee;border:1px solid #444;padding:.4rem .8rem;cursor:pointer}
.save-btn.has-changes{animation:pulse 1s infinite}
@keyframes pulse{0%{opacity:1}50%{opacity:.5}100%{opacity:1}}
.filter-bar{display:flex;flex-wrap:wrap;gap:.4rem;padding:.5rem 1rem;background:#161616}
.tag-btn,.rating-btn{background:#222;color:#eee;border:1px solid #444;padding:.3rem .6rem;cursor:pointer}
.tag-btn.active,.rating-btn.active{background:#446}
.year-header{padding:.5rem 1rem;margin:0}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(140px,1fr));gap:4px;padding:0 1rem 1rem}
.thumb{position:relative;cursor:pointer}
.thumb img{width:100%;height:140px;object-fit:cover;display:block}
.thumb-stars{position:absolute;top:2px;right:2px;color:gold;font-size:.8rem;text-shadow:0 0 2px #000}
.thumb .info{font-size:.7rem;padding:2px;background:rgba(0,0,0,.5);position:absolute;bottom:0;left:0;right:0}
#lightbox{position:fixed;inset:0;background:rgba(0,0,0,.95);display:none;flex-direction:column;z-index:100}
#lightbox.open{display:flex}
.lb-top-bar{display:flex;justify-content:flex-end;gap:1rem;padding:.5rem 1rem}
.lb-body{flex:1;display:flex;align-items:center;justify-content:center;position:relative}
#lb-img{max-width:90%;max-height:80vh;object-fit:contain}
.lb-prev,.lb-next{position:absolute;top:50%;transform:translateY(-50%);background:none;border:none;color:#fff;font-size:2rem;cursor:pointer}
.lb-prev{left:1rem}.lb-next{right:1rem}
.lb-panel{padding:.5rem 1rem;text-align:center}
#lb-stars span{cursor:pointer;font-size:1.3rem;color:#666}
#lb-stars span.filled{color:gold}
.tag-badge{display:inline-block;background:#333;border-radius:3px;padding:.1rem .4rem;margin:.1rem;font-size:.8rem}
.tag-badge .remove{margin-left:.3rem;cursor:pointer;color:#f88}
#tag-suggestions span{display:inline-block;background:#222;border:1px dashed #555;border-radius:3px;padding:.1rem .4rem;margin:.1rem;cursor:pointer;font-size:.75rem}
.lb-slideshow-bar{height:3px;background:#333}
.lb-slideshow-bar .fill{height:100%;width:0;background:#6cf}
.slideshow-controls{display:flex;gap:.5rem;justify-content:center;padding:.3rem;align-items:center}
#toast{position:fixed;bottom:1rem;left:50%;transform:translateX(-50%);background:#333;padding:.5rem 1rem;border-radius:4px;display:none;z-index:200}
</style>
</head>
<body>
<header>
<button id="btn-slideshow">Diaporama</button>
<button id="btn-random">Aléatoire</button>
<button id="btn-export" class="export-btn">Exporter</button>
<button id="btn-save" class="save-btn">Enregistrer</button>
</header>
<div class="filter-bar" id="tags-filter">__TAGS_FILTER_HTML__</div>
<div class="filter-bar" id="rating-filter">
<button class="rating-btn active" data-rating="-1">Toutes</button>
<button class="rating-btn" data-rating="0">✕</button>
<button class="rating-btn" data-rating="1">★</button>
<button class="rating-btn" data-rating="2">★★</button>
<button class="rating-btn" data-rating="3">★★★</button>
<button class="rating-btn" data-rating="4">★★★★</button>
<button class="rating-btn" data-rating="5">★★★★★</button>
</div>
<main id="grid-container">__GRID_HTML__</main>

<div id="lightbox">
<div class="lb-top-bar">
<a id="lb-download" download>Télécharger</a>
<button id="lb-close">✕</button>
</div>
<div class="lb-body">
<button class="lb-prev">‹</button>
<img id="lb-img">
<button class="lb-next">›</button>
</div>
<div class="lb-panel">
<div id="lb-name"></div>
<div id="lb-stars">
<span data-v="1">★</span><span data-v="2">★</span><span data-v="3">★</span><span data-v="4">★</span><span data-v="5">★</span>
</div>
<div id="lb-edit-tags"></div>
<div>
<input id="tag-input" placeholder="nouveau tag">
<button id="tag-add">+</button>
</div>
<div id="tag-suggestions"></div>
</div>
<div class="lb-slideshow-bar"><div class="fill" id="slideshow-fill"></div></div>
<div class="slideshow-controls">
<button id="ss-prev">‹</button>
<button id="ss-playpause">Lecture</button>
<button id="ss-next">›</button>
<button id="ss-random">Aléatoire</button>
<button id="ss-speed-down">-</button>
<span id="ss-speed-display">3s</span>
<button id="ss-speed-up">+</button>
</div>
</div>

<div id="toast"></div>

<script>
const ALL_PHOTOS = __PHOTOS_JSON__;
let filtered = ALL_PHOTOS.slice();
let activeTag = "";
let activeRating = -1;
let dirty = false;
let lbIndex = -1;
let slideshowTimer = null;
let slideshowRandom = false;
let slideshowSpeedMs = 3000;

function markDirty() {
  dirty = true;
  document.getElementById("btn-save").classList.add("has-changes");
}

function showToast(msg) {
  const t = document.getElementById("toast");
  t.textContent = msg;
  t.style.display = "block";
  setTimeout(() => { t.style.display = "none"; }, 2000);
}

function applyFilters() {
  filtered = ALL_PHOTOS.filter(p => {
    if (activeTag && !p.tags.includes(activeTag)) return false;
    if (activeRating >= 0) {
      const r = p.rating || 0;
      if (activeRating === 0 ? r !== 0 : r < activeRating) return false;
    }
    return true;
  });
  document.querySelectorAll(".thumb").forEach(el => {
    const idx = parseInt(el.dataset.idx, 10);
    const p = ALL_PHOTOS[idx];
    const visible = filtered.includes(p);
    el.style.display = visible ? "" : "none";
  });
}

document.querySelectorAll(".tag-btn").forEach(btn => {
  btn.addEventListener("click", () => {
    document.querySelectorAll(".tag-btn").forEach(b => b.classList.remove("active"));
    btn.classList.add("active");
    activeTag = btn.dataset.tag;
    applyFilters();
  });
});

document.querySelectorAll(".rating-btn").forEach(btn => {
  btn.addEventListener("click", () => {
    document.querySelectorAll(".rating-btn").forEach(b => b.classList.remove("active"));
    btn.classList.add("active");
    activeRating = parseInt(btn.dataset.rating, 10);
    applyFilters();
  });
});

document.querySelectorAll(".thumb").forEach(el => {
  el.addEventListener("click", () => openLightbox(parseInt(el.dataset.idx, 10)));
});

function openLightbox(idx) {
  lbIndex = idx;
  renderLightbox();
  document.getElementById("lightbox").classList.add("open");
}

function closeLightbox() {
  document.getElementById("lightbox").classList.remove("open");
  stopSlideshow();
}

function currentPhoto() { return ALL_PHOTOS[lbIndex]; }

function renderLightbox() {
  const p = currentPhoto();
  if (!p) return;
  document.getElementById("lb-img").src = "/thumb/" + p.src;
  document.getElementById("lb-download").href = "/" + p.src;
  document.getElementById("lb-name").textContent = p.name;
  renderStars(p.rating || 0);
  renderTagEditor(p);
}

function renderStars(rating) {
  document.querySelectorAll("#lb-stars span").forEach(s => {
    s.classList.toggle("filled", parseInt(s.dataset.v, 10) <= rating);
  });
}

function renderTagEditor(p) {
  const container = document.getElementById("lb-edit-tags");
  container.innerHTML = "";
  p.tags.forEach(t => {
    const badge = document.createElement("span");
    badge.className = "tag-badge";
    badge.textContent = t;
    const rm = document.createElement("span");
    rm.className = "remove";
    rm.textContent = "×";
    rm.addEventListener("click", () => { removeTag(p, t); });
    badge.appendChild(rm);
    container.appendChild(badge);
  });
  renderTagSuggestions(p);
}

function renderTagSuggestions(p) {
  const all = new Set();
  ALL_PHOTOS.forEach(x => x.tags.forEach(t => all.add(t)));
  const container = document.getElementById("tag-suggestions");
  container.innerHTML = "";
  all.forEach(t => {
    if (p.tags.includes(t)) return;
    const chip = document.createElement("span");
    chip.textContent = t;
    chip.addEventListener("click", () => { addTag(p, t); });
    container.appendChild(chip);
  });
}

function addTag(p, t) {
  if (!t || p.tags.includes(t)) return;
  p.tags.push(t);
  markDirty();
  renderTagEditor(p);
}

function removeTag(p, t) {
  p.tags = p.tags.filter(x => x !== t);
  markDirty();
  renderTagEditor(p);
}

function setRating(v) {
  const p = currentPhoto();
  if (!p) return;
  p.rating = (p.rating === v) ? null : v;
  markDirty();
  renderStars(p.rating || 0);
}

document.querySelectorAll("#lb-stars span").forEach(s => {
  s.addEventListener("click", () => setRating(parseInt(s.dataset.v, 10)));
});

document.getElementById("tag-add").addEventListener("click", () => {
  const input = document.getElementById("tag-input");
  addTag(currentPhoto(), input.value.trim());
  input.value = "";
});

document.getElementById("lb-close").addEventListener("click", closeLightbox);
document.querySelector(".lb-prev").addEventListener("click", () => navigate(-1));
document.querySelector(".lb-next").addEventListener("click", () => navigate(1));

function navigate(delta) {
  if (filtered.length === 0) return;
  let pos = filtered.indexOf(currentPhoto());
  pos = (pos + delta + filtered.length) % filtered.length;
  lbIndex = ALL_PHOTOS.indexOf(filtered[pos]);
  renderLightbox();
}

document.addEventListener("keydown", e => {
  if (!document.getElementById("lightbox").classList.contains("open")) return;
  if (e.key === "Escape") closeLightbox();
  else if (e.key === "ArrowLeft") navigate(-1);
  else if (e.key === "ArrowRight") navigate(1);
  else if (e.key >= "0" && e.key <= "5") setRating(parseInt(e.key, 10));
});

function startSlideshow(random) {
  slideshowRandom = random;
  document.getElementById("btn-slideshow").click;
  openLightbox(random ? Math.floor(Math.random() * filtered.length) : 0);
  runSlideshowTick();
}

function stopSlideshow() {
  if (slideshowTimer) { clearTimeout(slideshowTimer); slideshowTimer = null; }
}

function runSlideshowTick() {
  const fill = document.getElementById("slideshow-fill");
  const start = performance.now();
  function animate(now) {
    const pct = Math.min(100, ((now - start) / slideshowSpeedMs) * 100);
    fill.style.width = pct + "%";
    if (pct < 100 && slideshowTimer !== null) requestAnimationFrame(animate);
  }
  requestAnimationFrame(animate);
  slideshowTimer = setTimeout(() => {
    navigate(slideshowRandom ? (Math.floor(Math.random() * filtered.length) - filtered.indexOf(currentPhoto())) : 1);
    runSlideshowTick();
  }, slideshowSpeedMs);
}

document.getElementById("btn-slideshow").addEventListener("click", () => startSlideshow(false));
document.getElementById("btn-random").addEventListener("click", () => startSlideshow(true));
document.getElementById("ss-playpause").addEventListener("click", () => {
  if (slideshowTimer) { stopSlideshow(); document.getElementById("slideshow-fill").style.width = "0"; }
  else { runSlideshowTick(); }
});
document.getElementById("ss-prev").addEventListener("click", () => navigate(-1));
document.getElementById("ss-next").addEventListener("click", () => navigate(1));
document.getElementById("ss-random").addEventListener("click", () => { slideshowRandom = !slideshowRandom; });
document.getElementById("ss-speed-down").addEventListener("click", () => {
  slideshowSpeedMs = Math.max(1000, slideshowSpeedMs - 1000);
  document.getElementById("ss-speed-display").textContent = (slideshowSpeedMs / 1000) + "s";
});
document.getElementById("ss-speed-up").addEventListener("click", () => {
  slideshowSpeedMs = Math.min(15000, slideshowSpeedMs + 1000);
  document.getElementById("ss-speed-display").textContent = (slideshowSpeedMs / 1000) + "s";
});

function saveMetadata() {
  const files = {};
  ALL_PHOTOS.forEach(p => {
    if (p.tags.length > 0 || p.rating) {
      files[p.src] = {};
      if (p.tags.length > 0) files[p.src].tags = p.tags;
      if (p.rating) files[p.src].rating = p.rating;
    }
  });
  fetch("/api/metadata", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({files: files}),
  }).then(r => r.json()).then(() => {
    dirty = false;
    document.getElementById("btn-save").classList.remove("has-changes");
    showToast("Enregistré");
  }).catch(() => showToast("Échec de l'enregistrement"));
}

document.getElementById("btn-save").addEventListener("click", saveMetadata);

document.getElementById("btn-export").addEventListener("click", () => {
  const list = filtered.map(p => p.src).join("\n");
  const blob = new Blob([list], {type: "text/plain"});
  const a = document.createElement("a");
  a.href = URL.createObjectURL(blob);
  a.download = "export_list.txt";
  a.click();
});

window.addEventListener("beforeunload", e => {
  if (dirty) { e.preventDefault(); e.returnValue = ""; }
});

applyFilters();
</script>
</body>
</html>`
